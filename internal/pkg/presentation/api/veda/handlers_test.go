package veda

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/veda-client/internal/pkg/application/platform"
	"github.com/diwise/veda-client/internal/pkg/application/subscriptions"
	"github.com/diwise/veda-client/pkg/veda"
	"github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/rights"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

func TestAuthenticate(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.AuthenticateFunc = func(ctx context.Context, login, password, secret string) (*veda.Ticket, error) {
		return &veda.Ticket{ID: "ticket-1", UserURI: "td:RomanKarpov", EndTime: 1700000000, Result: 200}, nil
	}

	resp, body := newTestRequest(is, ts, http.MethodGet, "/authenticate?login=karpovrt&password=abc", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `{"id":"ticket-1","user_uri":"td:RomanKarpov","end_time":1700000000,"result":200}`)
	is.Equal(app.AuthenticateCalls()[0].Login, "karpovrt")
	is.Equal(app.AuthenticateCalls()[0].Password, "abc")
}

func TestAuthenticationFailureReturns472(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.AuthenticateFunc = func(ctx context.Context, login, password, secret string) (*veda.Ticket, error) {
		return nil, errors.NewAuthenticationError("authentication failed")
	}

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/authenticate?login=karpovrt&password=wrong", nil)

	is.Equal(resp.StatusCode, errors.StatusAuthenticationFailed)
}

func TestGetIndividual(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.GetIndividualFunc = func(ctx context.Context, ticket, uri string) (*individuals.Individual, error) {
		return individuals.New(uri, individuals.Label("Hello", "EN"))
	}

	resp, body := newTestRequest(is, ts, http.MethodGet, "/get_individual?ticket=t1&uri=doc:1", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `{"@":"doc:1","rdfs:label":[{"data":"Hello","type":"String","lang":"EN"}]}`)
	is.Equal(app.GetIndividualCalls()[0].Ticket, "t1")
}

func TestGetIndividualNotFound(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.GetIndividualFunc = func(ctx context.Context, ticket, uri string) (*individuals.Individual, error) {
		return nil, errors.NewNotFoundError("no individual with uri " + uri)
	}

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/get_individual?ticket=t1&uri=doc:404", nil)

	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestGetIndividuals(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.GetIndividualsFunc = func(ctx context.Context, ticket string, uris []string) ([]*individuals.Individual, error) {
		list := []*individuals.Individual{}
		for _, uri := range uris {
			i, _ := individuals.New(uri)
			list = append(list, i)
		}
		return list, nil
	}

	resp, body := newTestRequest(is, ts, http.MethodPost, "/get_individuals", strings.NewReader(`{"ticket":"t1","uris":["doc:1","doc:2"]}`))

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `[{"@":"doc:1"},{"@":"doc:2"}]`)
}

func TestPutIndividual(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.PutIndividualsFunc = func(ctx context.Context, ticket string, list []*individuals.Individual, options platform.ModifyOptions) (*veda.OperationResult, error) {
		return &veda.OperationResult{OpID: 3, Result: 200}, nil
	}

	resp, body := newTestRequest(is, ts, http.MethodPut, "/put_individual", strings.NewReader(`{
		"ticket": "t1",
		"prepare_events": true,
		"event_id": "ev-1",
		"individual": {"@": "doc:1", "v-s:count": [{"data": 5, "type": "Integer"}]}
	}`))

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `{"op_id":3,"result":200}`)

	call := app.PutIndividualsCalls()[0]
	is.Equal(call.Options, platform.ModifyOptions{PrepareEvents: true, EventID: "ev-1"})
	is.Equal(call.List[0].GetFirstValue("v-s:count", ""), "5")
}

func TestPutIndividualWithMalformedIndividual(t *testing.T) {
	is, ts, _ := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, http.MethodPut, "/put_individual", strings.NewReader(`{"ticket":"t1","individual":{"rdfs:label":[]}}`))

	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestPutIndividualWithBadJSON(t *testing.T) {
	is, ts, _ := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, http.MethodPut, "/put_individual", strings.NewReader("this is not my json"))

	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestModifyIndividual(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.ModifyIndividualFunc = func(ctx context.Context, ticket string, operation subscriptions.Operation, fragment *individuals.Individual, options platform.ModifyOptions) (*veda.OperationResult, error) {
		return &veda.OperationResult{OpID: 4, Result: 200}, nil
	}

	resp, _ := newTestRequest(is, ts, http.MethodPut, "/remove_from_individual", strings.NewReader(`{"ticket":"t1","uri":"doc:1","individual":{"@":"doc:1","v-s:tag":[{"data":"old","type":"String"}]}}`))

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(app.ModifyIndividualCalls()[0].Operation, subscriptions.OperationRemoveFrom)
}

func TestModifyIndividualWithMismatchingURI(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, http.MethodPut, "/set_in_individual", strings.NewReader(`{"ticket":"t1","uri":"doc:2","individual":{"@":"doc:1"}}`))

	is.Equal(resp.StatusCode, http.StatusBadRequest)
	is.Equal(len(app.ModifyIndividualCalls()), 0)
}

func TestOperationFailedReturns473(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.RemoveIndividualFunc = func(ctx context.Context, ticket, uri string, options platform.ModifyOptions) (*veda.OperationResult, error) {
		return nil, errors.NewOperationFailedError("storage is read only")
	}

	resp, body := newTestRequest(is, ts, http.MethodPut, "/remove_individual", strings.NewReader(`{"ticket":"t1","uri":"doc:1"}`))

	is.Equal(resp.StatusCode, errors.StatusOperationFailed)
	is.Equal(strings.TrimSpace(body), "storage is read only")
}

func TestGetRights(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.GetRightsFunc = func(ctx context.Context, ticket, uri string) (*rights.Rights, error) {
		return &rights.Rights{Read: true}, nil
	}

	resp, body := newTestRequest(is, ts, http.MethodGet, "/get_rights?ticket=t1&uri=doc:1", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `{"@":"_","rdf:type":[{"data":"v-s:PermissionStatement","type":"Uri"}],"v-s:canRead":[{"data":true,"type":"Boolean"}]}`)
}

func TestGetOperationState(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.GetOperationStateFunc = func(ctx context.Context, moduleID, waitOpID int64) int64 {
		return 17
	}

	resp, body := newTestRequest(is, ts, http.MethodGet, "/get_operation_state?module_id=4&wait_op_id=17", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, "17")
	is.Equal(app.GetOperationStateCalls()[0].ModuleID, int64(4))
}

func TestGetOperationStateWithBadModuleID(t *testing.T) {
	is, ts, _ := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/get_operation_state?module_id=four", nil)

	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestDownloadFile(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.DownloadFileFunc = func(ctx context.Context, ticket, uri string) ([]byte, error) {
		return []byte("contents of " + uri), nil
	}

	resp, body := newTestRequest(is, ts, http.MethodGet, "/files/file:1?ticket=t1", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, "contents of file:1")
}

func TestDownloadFileWithEscapedURI(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.DownloadFileFunc = func(ctx context.Context, ticket, uri string) ([]byte, error) {
		return []byte(uri), nil
	}

	resp, body := newTestRequest(is, ts, http.MethodGet, "/files/file:50%25?ticket=t1", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, "file:50%")

	resp, body = newTestRequest(is, ts, http.MethodGet, "/files/reports%2F2024?ticket=t1", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, "reports/2024")
}

func TestMetricsAreExposed(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.IsTicketValidFunc = func(ctx context.Context, ticket string) bool {
		return false
	}

	resp, body := newTestRequest(is, ts, http.MethodGet, "/is_ticket_valid?ticket=t1", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, "false")

	resp, body = newTestRequest(is, ts, http.MethodGet, "/metrics", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `veda_stub_requests_total{code="200",endpoint="/is_ticket_valid"} 1`))
}

func setupTest(t *testing.T) (*is.I, *httptest.Server, *platform.PlatformAPIMock) {
	is := is.New(t)
	r := chi.NewRouter()
	ts := httptest.NewServer(r)

	app := &platform.PlatformAPIMock{}

	err := RegisterHandlers(context.Background(), r, app)
	is.NoErr(err)

	return is, ts, app
}

func newTestRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(bytes.TrimSpace(respBody))
}
