package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/diwise/veda-client/pkg/veda/auth"
	"github.com/diwise/veda-client/pkg/veda/client"
	vedaerrors "github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/query"
	"github.com/diwise/veda-client/pkg/veda/rights"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/diwise/veda-client/pkg/veda/types/values"

	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var method = expects.RequestMethod
var bodyContaining = expects.RequestBodyContaining

func DefaultTestFlags() FlagMap {
	return FlagMap{
		listenAddress: "",
		servicePort:   "0",

		logFormat: "json",
	}
}

func TestIntegrateIndividualLifecycle(t *testing.T) {
	is, ctx, ts := setupIntegrationTest(t, DefaultTestFlags())

	c := login(is, ctx, ts, "alice")

	doc, _ := individuals.New("doc:1",
		individuals.Type("v-s:Document"),
		individuals.Label("Hello", "EN"),
		individuals.Label("Привет", "RU"),
	)

	result, err := c.PutIndividual(ctx, doc)
	is.NoErr(err)
	is.True(result.OpID > 0)

	stored, err := c.GetIndividual(ctx, "doc:1")
	is.NoErr(err)
	is.Equal(stored.GetProperty(individuals.RdfsLabel), doc.GetProperty(individuals.RdfsLabel))
	is.Equal(stored.GetFirstValue(individuals.VsCreator, ""), "td:Alice") // creator should be set on creation

	tag, _ := individuals.New("doc:1", individuals.Text("v-s:tag", "draft"), individuals.Text("v-s:tag", "internal"))
	_, err = c.AddToIndividual(ctx, tag)
	is.NoErr(err)

	drop, _ := individuals.New("doc:1", individuals.Text("v-s:tag", "draft"))
	_, err = c.RemoveFromIndividual(ctx, drop)
	is.NoErr(err)

	relabel, _ := individuals.New("doc:1", individuals.Label("Goodbye", "EN"))
	last, err := c.SetInIndividual(ctx, relabel)
	is.NoErr(err)

	stored, err = c.GetIndividual(ctx, "doc:1")
	is.NoErr(err)
	is.Equal(stored.Values("v-s:tag"), []string{"internal"})
	is.Equal(stored.GetProperty(individuals.RdfsLabel), []values.Value{values.Text("Goodbye", "EN")})

	r, err := c.GetRights(ctx, "doc:1")
	is.NoErr(err)
	is.Equal(r.String(), "-RUD")

	state, err := c.GetOperationState(ctx, 4, last.OpID)
	is.NoErr(err)
	is.Equal(state, last.OpID)

	_, err = c.RemoveIndividual(ctx, "doc:1")
	is.NoErr(err)

	_, err = c.GetIndividual(ctx, "doc:1")
	is.True(errors.Is(err, vedaerrors.ErrNotFound))
}

func TestIntegrateRightsAreEnforced(t *testing.T) {
	is, ctx, ts := setupIntegrationTest(t, DefaultTestFlags())

	alice := login(is, ctx, ts, "alice")
	bob := login(is, ctx, ts, "bob")
	eve := login(is, ctx, ts, "eve")

	doc, _ := individuals.New("doc:shared", individuals.Type("v-s:Document"), individuals.MemberOf("td:Department"))
	_, err := alice.PutIndividual(ctx, doc)
	is.NoErr(err)

	_, err = eve.GetIndividual(ctx, "doc:shared")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication))

	_, err = eve.PutIndividual(ctx, doc)
	is.True(errors.Is(err, vedaerrors.ErrAuthentication))

	_, err = bob.GetIndividual(ctx, "doc:shared")
	is.NoErr(err)

	_, err = bob.RemoveIndividual(ctx, "doc:shared")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication)) // only the creator may remove

	m, err := bob.GetMembership(ctx, "doc:shared")
	is.NoErr(err)
	is.Equal(m.Groups, []string{"td:Department"})

	origins, err := bob.GetRightsOrigin(ctx, "doc:shared")
	is.NoErr(err)
	is.Equal(len(origins), 1)
	is.Equal(origins[0].GetFirstValue(rights.PermissionSubject, ""), "td:Department")
	is.Equal(origins[0].GetFirstValue(rights.PermissionObject, ""), "doc:shared")

	found, err := eve.GetIndividuals(ctx, []string{"doc:shared", "doc:missing"})
	is.NoErr(err)
	is.Equal(len(found), 0)
}

func TestIntegrateQueryIndividuals(t *testing.T) {
	is, ctx, ts := setupIntegrationTest(t, DefaultTestFlags())

	c := login(is, ctx, ts, "alice")

	list := []*individuals.Individual{}
	for _, uri := range []string{"doc:5", "doc:2", "doc:4", "doc:1", "doc:3"} {
		i, _ := individuals.New(uri, individuals.Type("v-s:Document"))
		list = append(list, i)
	}
	note, _ := individuals.New("note:1", individuals.Type("v-s:Note"))
	list = append(list, note)

	_, err := c.PutIndividuals(ctx, list)
	is.NoErr(err)

	q := query.And(query.Eq("rdf:type", "v-s:Document"))

	qr, err := c.Query(ctx, q, client.Top(2))
	is.NoErr(err)
	is.Equal(qr.Result, []string{"doc:1", "doc:2"})
	is.Equal(qr.Estimated, 5)
	is.True(qr.HasMore())

	uris := []string{}
	count, err := client.QueryIndividuals(ctx, c, q, 2, client.Identity, func(i *individuals.Individual) {
		uris = append(uris, i.URI())
	})
	is.NoErr(err)
	is.Equal(count, 5)
	is.Equal(uris, []string{"doc:1", "doc:2", "doc:3", "doc:4", "doc:5"})
}

func TestIntegrateFiles(t *testing.T) {
	is, ctx, ts := setupIntegrationTest(t, DefaultTestFlags())

	c := login(is, ctx, ts, "alice")

	err := c.UploadFile(ctx, "file:report", "2024/03", "report.txt", strings.NewReader("quarterly numbers"))
	is.NoErr(err)

	content, err := c.DownloadFile(ctx, "file:report")
	is.NoErr(err)
	is.Equal(string(content), "quarterly numbers")

	_, err = c.DownloadFile(ctx, "file:missing")
	is.True(errors.Is(err, vedaerrors.ErrNotFound))
}

func TestIntegrateTickets(t *testing.T) {
	is, ctx, ts := setupIntegrationTest(t, DefaultTestFlags())

	bogus := client.NewVedaClient(ts.URL, client.Ticket("bogus"))

	valid, err := bogus.IsTicketValid(ctx)
	is.NoErr(err)
	is.True(!valid)

	_, err = bogus.GetIndividual(ctx, "doc:1")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication))

	_, err = client.NewVedaClient(ts.URL).Authenticate(ctx, "alice", auth.HashPassword("wrong"), "")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication))

	alice := login(is, ctx, ts, "alice")
	_, err = alice.GetTicketTrusted(ctx, "bob")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication)) // alice is not a trusted user

	service := login(is, ctx, ts, "service")
	ticket, err := service.GetTicketTrusted(ctx, "bob")
	is.NoErr(err)
	is.Equal(ticket.UserURI, "td:Bob")

	valid, err = service.IsTicketValid(ctx, client.WithTicket(ticket.ID))
	is.NoErr(err)
	is.True(valid)
}

func TestIntegrateNotificationsArePosted(t *testing.T) {
	is := is.New(t)

	ms := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			bodyContaining("doc:evented"),
		),
		Returns(
			response.Code(http.StatusOK),
		),
	)
	defer ms.Close()

	flags := DefaultTestFlags()
	flags[notifierEndpoint] = ms.URL()

	_, ctx, ts := setupIntegrationTest(t, flags)

	c := login(is, ctx, ts, "alice")

	quiet, _ := individuals.New("doc:quiet")
	_, err := c.PutIndividual(ctx, quiet)
	is.NoErr(err)

	evented, _ := individuals.New("doc:evented")
	_, err = c.PutIndividual(ctx, evented, client.PrepareEvents(true))
	is.NoErr(err)

	ts.shutdown()

	is.Equal(ms.RequestCount(), 1)
}

type testServer struct {
	*httptest.Server
	shutdown func()
}

func setupIntegrationTest(t *testing.T, flags FlagMap) (*is.I, context.Context, *testServer) {
	is := is.New(t)
	ctx := t.Context()

	policies, err := os.Open("../../assets/config/authz.rego")
	is.NoErr(err)

	handler, shutdown, err := initialize(ctx, flags, &AppConfig{
		usersConfig: io.NopCloser(strings.NewReader(usersConfig)),
		opaConfig:   policies,
	})
	is.NoErr(err)

	ts := &testServer{Server: httptest.NewServer(handler), shutdown: shutdown}
	t.Cleanup(func() {
		ts.Close()
		shutdown()
	})

	return is, ctx, ts
}

func login(is *is.I, ctx context.Context, ts *testServer, user string) client.VedaClient {
	c := client.NewVedaClient(ts.URL)

	_, err := c.Authenticate(ctx, user, auth.HashPassword(user+"-password"), "")
	is.NoErr(err)

	return c
}

const usersConfig string = `
ticketLifetime: 1h
users:
  - login: alice
    password: alice-password
    uri: td:Alice
    groups: [td:Department]
  - login: bob
    password: bob-password
    uri: td:Bob
    groups: [td:Department]
  - login: eve
    password: eve-password
    uri: td:Eve
  - login: service
    password: service-password
    uri: cfg:VedaSystem
    trusted: true
`
