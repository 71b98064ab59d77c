package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/veda-client/pkg/veda"
	"github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/rights"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type VedaClient interface {
	Authenticate(ctx context.Context, login, password, secret string) (*veda.Ticket, error)
	IsTicketValid(ctx context.Context, parameters ...RequestDecoratorFunc) (bool, error)
	GetTicketTrusted(ctx context.Context, login string, parameters ...RequestDecoratorFunc) (*veda.Ticket, error)

	Query(ctx context.Context, query string, parameters ...RequestDecoratorFunc) (*veda.QueryResult, error)

	GetIndividual(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) (*individuals.Individual, error)
	GetIndividuals(ctx context.Context, uris []string, parameters ...RequestDecoratorFunc) ([]*individuals.Individual, error)
	PutIndividual(ctx context.Context, individual *individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error)
	PutIndividuals(ctx context.Context, list []*individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error)
	RemoveIndividual(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error)
	RemoveFromIndividual(ctx context.Context, individual *individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error)
	SetInIndividual(ctx context.Context, individual *individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error)
	AddToIndividual(ctx context.Context, individual *individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error)

	GetRights(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) (*rights.Rights, error)
	GetRightsOrigin(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) ([]*individuals.Individual, error)
	GetMembership(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) (*rights.Membership, error)

	GetOperationState(ctx context.Context, moduleID, waitOpID int64) (int64, error)

	UploadFile(ctx context.Context, fileURI, path, filename string, content io.Reader, parameters ...RequestDecoratorFunc) error
	DownloadFile(ctx context.Context, fileURI string, parameters ...RequestDecoratorFunc) ([]byte, error)

	Ticket() string
	UserURI() string
}

func Debug(enabled string) func(*vedaClient) {
	return func(c *vedaClient) {
		c.debug = (enabled == "true")
	}
}

// Ticket makes the client use an already issued ticket
func Ticket(ticket string) func(*vedaClient) {
	return func(c *vedaClient) {
		c.ticket = ticket
	}
}

// WithHTTPClient replaces the default, otel instrumented, http client
func WithHTTPClient(httpClient http.Client) func(*vedaClient) {
	return func(c *vedaClient) {
		c.httpClient = httpClient
	}
}

func NewVedaClient(baseURL string, options ...func(*vedaClient)) VedaClient {
	c := &vedaClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		debug:   false,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const (
	TraceAttributeURI      string = "veda-uri"
	TraceAttributeLogin    string = "veda-login"
	TraceAttributeURICount string = "veda-uri-count"
)

var tracer = otel.Tracer("veda-client")

type vedaClient struct {
	baseURL    string
	debug      bool
	httpClient http.Client

	mu      sync.RWMutex
	ticket  string
	userURI string
}

func (c *vedaClient) Ticket() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ticket
}

func (c *vedaClient) UserURI() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userURI
}

func (c *vedaClient) Authenticate(ctx context.Context, login, password, secret string) (*veda.Ticket, error) {
	var err error

	ctx, span := tracer.Start(ctx, "authenticate",
		trace.WithAttributes(attribute.String(TraceAttributeLogin, login)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params := url.Values{}
	params.Set("login", login)
	params.Set("password", password)
	if secret != "" {
		params.Set("secret", secret)
	}

	body, err := c.get(ctx, "/authenticate", params)
	if err != nil {
		return nil, err
	}

	t, err := veda.NewTicket(body)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.ticket = t.ID
	c.userURI = t.UserURI
	c.mu.Unlock()

	logging.GetFromContext(ctx).Debug("authenticated", "user_uri", t.UserURI)

	return t, nil
}

// IsTicketValid asks the platform if the ticket is still valid. An explicit rejection of
// the ticket is reported as false, transport and server errors are returned as errors.
func (c *vedaClient) IsTicketValid(ctx context.Context, parameters ...RequestDecoratorFunc) (bool, error) {
	var err error

	ctx, span := tracer.Start(ctx, "is-ticket-valid")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params, err := c.ticketParams(parameters)
	if err != nil {
		return false, err
	}

	response, responseBody, err := c.callPlatform(ctx, http.MethodGet, "/is_ticket_valid?"+toQuery(params).Encode(), nil, "")
	if err != nil {
		return false, err
	}

	if response.StatusCode != http.StatusOK {
		if response.StatusCode >= http.StatusInternalServerError {
			err = errors.NewErrorFromStatusCode(response.StatusCode, responseBody)
			return false, err
		}
		return false, nil
	}

	valid := false
	err = json.Unmarshal(responseBody, &valid)
	if err != nil {
		err = fmt.Errorf("failed to parse ticket validity %q: %s (%w)", string(responseBody), err.Error(), errors.ErrBadResponse)
		return false, err
	}

	return valid, nil
}

func (c *vedaClient) GetTicketTrusted(ctx context.Context, login string, parameters ...RequestDecoratorFunc) (*veda.Ticket, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-ticket-trusted",
		trace.WithAttributes(attribute.String(TraceAttributeLogin, login)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params, err := c.ticketParams(parameters)
	if err != nil {
		return nil, err
	}
	params["login"] = login

	body, err := c.get(ctx, "/get_ticket_trusted", toQuery(params))
	if err != nil {
		return nil, err
	}

	return veda.NewTicket(body)
}

func (c *vedaClient) Query(ctx context.Context, query string, parameters ...RequestDecoratorFunc) (*veda.QueryResult, error) {
	var err error

	ctx, span := tracer.Start(ctx, "query")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params, err := c.ticketParams(parameters)
	if err != nil {
		return nil, err
	}
	params["query"] = query

	body, err := c.send(ctx, http.MethodPost, "/query", params)
	if err != nil {
		return nil, err
	}

	return veda.NewQueryResult(body)
}

func (c *vedaClient) GetIndividual(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) (*individuals.Individual, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-individual",
		trace.WithAttributes(attribute.String(TraceAttributeURI, uri)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params, err := c.ticketParams(parameters)
	if err != nil {
		return nil, err
	}
	params["uri"] = uri

	body, err := c.get(ctx, "/get_individual", toQuery(params))
	if err != nil {
		return nil, err
	}

	i, err := individuals.NewFromJSON(body)
	if err != nil {
		err = c.describeUnmarshalError(body, err)
		return nil, err
	}

	return i, nil
}

func (c *vedaClient) GetIndividuals(ctx context.Context, uris []string, parameters ...RequestDecoratorFunc) ([]*individuals.Individual, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-individuals",
		trace.WithAttributes(attribute.Int(TraceAttributeURICount, len(uris))),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params, err := c.ticketParams(parameters)
	if err != nil {
		return nil, err
	}
	params["uris"] = uris

	body, err := c.send(ctx, http.MethodPost, "/get_individuals", params)
	if err != nil {
		return nil, err
	}

	list, err := individuals.NewFromSlice(body)
	if err != nil {
		err = c.describeUnmarshalError(body, err)
		return nil, err
	}

	return list, nil
}

func (c *vedaClient) PutIndividual(ctx context.Context, individual *individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error) {
	return c.modify(ctx, "put-individual", "/put_individual", individual.URI(), func(params map[string]any) {
		params["individual"] = individual
	}, parameters)
}

func (c *vedaClient) PutIndividuals(ctx context.Context, list []*individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error) {
	return c.modify(ctx, "put-individuals", "/put_individuals", "", func(params map[string]any) {
		params["individuals"] = list
	}, parameters)
}

func (c *vedaClient) RemoveIndividual(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error) {
	return c.modify(ctx, "remove-individual", "/remove_individual", uri, func(params map[string]any) {
		params["uri"] = uri
	}, parameters)
}

// RemoveFromIndividual removes the values held by individual from the stored individual with the same uri
func (c *vedaClient) RemoveFromIndividual(ctx context.Context, individual *individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error) {
	return c.modify(ctx, "remove-from-individual", "/remove_from_individual", individual.URI(), fragment(individual), parameters)
}

// SetInIndividual replaces the properties present in individual on the stored individual
func (c *vedaClient) SetInIndividual(ctx context.Context, individual *individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error) {
	return c.modify(ctx, "set-in-individual", "/set_in_individual", individual.URI(), fragment(individual), parameters)
}

// AddToIndividual appends the values held by individual to the stored individual
func (c *vedaClient) AddToIndividual(ctx context.Context, individual *individuals.Individual, parameters ...RequestDecoratorFunc) (*veda.OperationResult, error) {
	return c.modify(ctx, "add-to-individual", "/add_to_individual", individual.URI(), fragment(individual), parameters)
}

func fragment(individual *individuals.Individual) func(map[string]any) {
	return func(params map[string]any) {
		params["uri"] = individual.URI()
		params["individual"] = individual
	}
}

func (c *vedaClient) modify(ctx context.Context, spanName, endpoint, uri string, decorate func(map[string]any), parameters []RequestDecoratorFunc) (*veda.OperationResult, error) {
	var err error

	ctx, span := tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String(TraceAttributeURI, uri)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params, err := c.ticketParams(parameters)
	if err != nil {
		return nil, err
	}
	decorate(params)

	body, err := c.send(ctx, http.MethodPut, endpoint, params)
	if err != nil {
		return nil, err
	}

	return veda.NewOperationResult(body)
}

func (c *vedaClient) GetRights(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) (*rights.Rights, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-rights",
		trace.WithAttributes(attribute.String(TraceAttributeURI, uri)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := c.getWithURI(ctx, "/get_rights", uri, parameters)
	if err != nil {
		return nil, err
	}

	statement, err := individuals.NewFromJSON(body)
	if err != nil {
		err = c.describeUnmarshalError(body, err)
		return nil, err
	}

	return rights.FromIndividual(statement)
}

func (c *vedaClient) GetRightsOrigin(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) ([]*individuals.Individual, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-rights-origin",
		trace.WithAttributes(attribute.String(TraceAttributeURI, uri)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := c.getWithURI(ctx, "/get_rights_origin", uri, parameters)
	if err != nil {
		return nil, err
	}

	origins, err := individuals.NewFromSlice(body)
	if err != nil {
		err = c.describeUnmarshalError(body, err)
		return nil, err
	}

	return origins, nil
}

func (c *vedaClient) GetMembership(ctx context.Context, uri string, parameters ...RequestDecoratorFunc) (*rights.Membership, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-membership",
		trace.WithAttributes(attribute.String(TraceAttributeURI, uri)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := c.getWithURI(ctx, "/get_membership", uri, parameters)
	if err != nil {
		return nil, err
	}

	membership, err := individuals.NewFromJSON(body)
	if err != nil {
		err = c.describeUnmarshalError(body, err)
		return nil, err
	}

	return rights.MembershipFromIndividual(membership)
}

func (c *vedaClient) GetOperationState(ctx context.Context, moduleID, waitOpID int64) (int64, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-operation-state")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params := url.Values{}
	params.Set("module_id", strconv.FormatInt(moduleID, 10))
	params.Set("wait_op_id", strconv.FormatInt(waitOpID, 10))

	body, err := c.get(ctx, "/get_operation_state", params)
	if err != nil {
		return 0, err
	}

	state, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		err = fmt.Errorf("invalid response format for operation state %q (%w)", string(body), errors.ErrBadResponse)
		return 0, err
	}

	return state, nil
}

func (c *vedaClient) UploadFile(ctx context.Context, fileURI, path, filename string, content io.Reader, parameters ...RequestDecoratorFunc) error {
	var err error

	ctx, span := tracer.Start(ctx, "upload-file",
		trace.WithAttributes(attribute.String(TraceAttributeURI, fileURI)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params, err := c.ticketParams(parameters)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	for _, field := range [][2]string{{"path", path}, {"uri", fileURI}} {
		if err = mw.WriteField(field[0], field[1]); err != nil {
			err = fmt.Errorf("failed to write form field %s: %s (%w)", field[0], err.Error(), errors.ErrInternal)
			return err
		}
	}

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		err = fmt.Errorf("failed to create form file: %s (%w)", err.Error(), errors.ErrInternal)
		return err
	}

	if _, err = io.Copy(part, content); err != nil {
		err = fmt.Errorf("failed to read file content: %s (%w)", err.Error(), errors.ErrRequest)
		return err
	}

	if err = mw.Close(); err != nil {
		err = fmt.Errorf("failed to complete multipart body: %s (%w)", err.Error(), errors.ErrInternal)
		return err
	}

	response, responseBody, err := c.callPlatform(ctx, http.MethodPost, "/files?"+toQuery(params).Encode(), buf, mw.FormDataContentType())
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK {
		err = errors.NewErrorFromStatusCode(response.StatusCode, responseBody)
		return err
	}

	return nil
}

func (c *vedaClient) DownloadFile(ctx context.Context, fileURI string, parameters ...RequestDecoratorFunc) ([]byte, error) {
	var err error

	ctx, span := tracer.Start(ctx, "download-file",
		trace.WithAttributes(attribute.String(TraceAttributeURI, fileURI)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params, err := c.ticketParams(parameters)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "/files/"+url.PathEscape(fileURI), toQuery(params))
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (c *vedaClient) getWithURI(ctx context.Context, endpoint, uri string, parameters []RequestDecoratorFunc) ([]byte, error) {
	params, err := c.ticketParams(parameters)
	if err != nil {
		return nil, err
	}
	params["uri"] = uri

	return c.get(ctx, endpoint, toQuery(params))
}

// ticketParams returns the request parameters with the ticket of the client, or the ticket
// supplied by a decorator, filled in. A request without a ticket is never sent.
func (c *vedaClient) ticketParams(parameters []RequestDecoratorFunc) (map[string]any, error) {
	params := map[string]any{
		"ticket": c.Ticket(),
	}

	for _, decorate := range parameters {
		decorate(params)
	}

	if t, ok := params["ticket"].(string); !ok || t == "" {
		return nil, errors.NewNoTicketError("no ticket provided and no ticket stored in the client")
	}

	return params, nil
}

func (c *vedaClient) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	response, responseBody, err := c.callPlatform(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		return nil, errors.NewErrorFromStatusCode(response.StatusCode, responseBody)
	}

	return responseBody, nil
}

func (c *vedaClient) send(ctx context.Context, method, endpoint string, params map[string]any) ([]byte, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %s (%w)", err.Error(), errors.ErrInternal)
	}

	response, responseBody, err := c.callPlatform(ctx, method, endpoint, bytes.NewBuffer(b), "application/json")
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		return nil, errors.NewErrorFromStatusCode(response.StatusCode, responseBody)
	}

	return responseBody, nil
}

func (c *vedaClient) describeUnmarshalError(body []byte, err error) error {
	if c.debug && len(body) < 1000 {
		return fmt.Errorf("unmarshaling of %s failed: %w", string(body), err)
	}
	return err
}

func (c *vedaClient) callPlatform(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrInternal)
	}

	req.Header.Add("Accept", "application/json")
	if contentType != "" {
		req.Header.Add("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if c.debug && resp.StatusCode != http.StatusOK {
		if resp.StatusCode != http.StatusNotFound {
			reqbytes, _ := httputil.DumpRequest(req, false)
			respbytes, _ := httputil.DumpResponse(resp, false)

			log := logging.GetFromContext(ctx)
			if resp.StatusCode >= http.StatusInternalServerError {
				log.Error("request failed", "request", string(reqbytes), "response", string(respbytes))
			} else {
				log.Warn("unexpected response", "request", string(reqbytes), "response", string(respbytes))
			}
		}
	}

	return resp, respBody, nil
}

func toQuery(params map[string]any) url.Values {
	q := url.Values{}
	for k, v := range params {
		switch typed := v.(type) {
		case []string:
			for _, s := range typed {
				q.Add(k, s)
			}
		default:
			q.Set(k, fmt.Sprint(v))
		}
	}
	return q
}
