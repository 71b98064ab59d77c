package platform

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/diwise/veda-client/internal/pkg/application/authz"
	"github.com/diwise/veda-client/internal/pkg/application/subscriptions"
	"github.com/diwise/veda-client/internal/pkg/infrastructure/storage"
	"github.com/diwise/veda-client/pkg/veda/auth"
	vedaerrors "github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/diwise/veda-client/pkg/veda/types/values"
	"github.com/matryer/is"
)

func TestLoadConfiguration(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadConfiguration(strings.NewReader(testUsers))
	is.NoErr(err)

	is.Equal(cfg.TicketLifetime, 30*time.Minute)
	is.Equal(len(cfg.Users), 5)
	is.Equal(cfg.Users[2], User{Login: "service", Password: "service-password", URI: "cfg:VedaSystem", Trusted: true})
	is.True(cfg.Users[4].IsSuperUser())
	is.True(!cfg.Users[0].IsSuperUser())
}

func TestLoadConfigurationDefaultsTicketLifetime(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadConfiguration(strings.NewReader("users: []"))
	is.NoErr(err)
	is.Equal(cfg.TicketLifetime, DefaultTicketLifetime)
}

func TestAuthenticateWithWrongPasswordFails(t *testing.T) {
	is, ctx, app, _ := setupTest(t)

	_, err := app.Authenticate(ctx, "alice", "alice-password", "")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication)) // password must be hashed

	ticket, err := app.Authenticate(ctx, "alice", auth.HashPassword("alice-password"), "")
	is.NoErr(err)
	is.Equal(ticket.UserURI, "td:Alice")
	is.True(app.IsTicketValid(ctx, ticket.ID))
}

func TestTicketsExpire(t *testing.T) {
	is := is.New(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	_, ctx, app, _ := setupTest(t, WithClock(func() time.Time { return now }))

	ticket, err := app.Authenticate(ctx, "alice", auth.HashPassword("alice-password"), "")
	is.NoErr(err)
	is.Equal(ticket.EndTime, now.Add(30*time.Minute).UnixMilli())
	is.True(app.IsTicketValid(ctx, ticket.ID))

	now = now.Add(31 * time.Minute)

	is.True(!app.IsTicketValid(ctx, ticket.ID))
	_, err = app.GetIndividual(ctx, ticket.ID, "doc:1")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication))
}

func TestMissingTicketIsReported(t *testing.T) {
	is, ctx, app, _ := setupTest(t)

	_, err := app.GetIndividual(ctx, "", "doc:1")
	is.True(errors.Is(err, vedaerrors.ErrNoTicket))
}

func TestPutIndividualsAddsCreator(t *testing.T) {
	is, ctx, app, n := setupTest(t)
	ticket := login(is, ctx, app, "alice")

	doc, _ := individuals.New("doc:1", individuals.Label("Hello", "EN"))

	result, err := app.PutIndividuals(ctx, ticket, []*individuals.Individual{doc}, ModifyOptions{PrepareEvents: true, EventID: "ev-1"})
	is.NoErr(err)
	is.Equal(result.OpID, int64(1))
	is.True(!doc.HasProperty(individuals.VsCreator)) // caller's individual should not be modified

	stored, err := app.GetIndividual(ctx, ticket, "doc:1")
	is.NoErr(err)
	is.Equal(stored.GetFirstValue(individuals.VsCreator, ""), "td:Alice")

	is.Equal(len(n.changes), 1)
	is.Equal(n.changes[0].Operation, subscriptions.OperationPut)
	is.Equal(n.changes[0].EventID, "ev-1")
	is.Equal(n.changes[0].UserURI, "td:Alice")
}

func TestPutIndividualsStoresNothingWhenOneIsDenied(t *testing.T) {
	is, ctx, app, n := setupTest(t)
	ticket := login(is, ctx, app, "alice")

	owned, _ := individuals.New("doc:owned")
	_, err := app.PutIndividuals(ctx, ticket, []*individuals.Individual{owned}, ModifyOptions{})
	is.NoErr(err)

	ticket = login(is, ctx, app, "bob")

	mine, _ := individuals.New("doc:mine")
	_, err = app.PutIndividuals(ctx, ticket, []*individuals.Individual{mine, owned}, ModifyOptions{PrepareEvents: true})
	is.True(errors.Is(err, vedaerrors.ErrAuthentication))

	_, err = app.GetIndividual(ctx, ticket, "doc:mine")
	is.True(errors.Is(err, vedaerrors.ErrNotFound))
	is.Equal(len(n.changes), 0)
}

func TestModifyIndividual(t *testing.T) {
	is, ctx, app, _ := setupTest(t)
	ticket := login(is, ctx, app, "alice")

	doc, _ := individuals.New("doc:1",
		individuals.Text("v-s:tag", "a"),
		individuals.Text("v-s:tag", "b"),
		individuals.Label("Hello", "EN"),
	)
	_, err := app.PutIndividuals(ctx, ticket, []*individuals.Individual{doc}, ModifyOptions{})
	is.NoErr(err)

	add, _ := individuals.New("doc:1", individuals.Text("v-s:tag", "b"), individuals.Text("v-s:tag", "c"))
	_, err = app.ModifyIndividual(ctx, ticket, subscriptions.OperationAddTo, add, ModifyOptions{})
	is.NoErr(err)

	remove, _ := individuals.New("doc:1", individuals.Text("v-s:tag", "a"))
	_, err = app.ModifyIndividual(ctx, ticket, subscriptions.OperationRemoveFrom, remove, ModifyOptions{})
	is.NoErr(err)

	set, _ := individuals.New("doc:1", individuals.Label("Bye", "EN"))
	result, err := app.ModifyIndividual(ctx, ticket, subscriptions.OperationSetIn, set, ModifyOptions{})
	is.NoErr(err)
	is.Equal(result.OpID, int64(4))

	stored, err := app.GetIndividual(ctx, ticket, "doc:1")
	is.NoErr(err)
	is.Equal(stored.Values("v-s:tag"), []string{"b", "b", "c"})
	is.Equal(stored.GetProperty(individuals.RdfsLabel), []values.Value{values.Text("Bye", "EN")})

	is.Equal(app.GetOperationState(ctx, 0, 4), int64(4))
}

func TestModifyIndividualTreatsValuesAsMultiset(t *testing.T) {
	is, ctx, app, _ := setupTest(t)
	ticket := login(is, ctx, app, "alice")

	doc, _ := individuals.New("doc:1",
		individuals.Text("v-s:tag", "a"),
		individuals.Text("v-s:tag", "a"),
		individuals.Text("v-s:tag", "b"),
	)
	_, err := app.PutIndividuals(ctx, ticket, []*individuals.Individual{doc}, ModifyOptions{})
	is.NoErr(err)

	desired, _ := individuals.New("doc:1", individuals.Text("v-s:tag", "a"))
	stored, err := app.GetIndividual(ctx, ticket, "doc:1")
	is.NoErr(err)

	_, err = app.ModifyIndividual(ctx, ticket, subscriptions.OperationRemoveFrom, stored.Difference(desired), ModifyOptions{})
	is.NoErr(err)

	stored, err = app.GetIndividual(ctx, ticket, "doc:1")
	is.NoErr(err)
	is.Equal(stored.Values("v-s:tag"), []string{"a"})

	add, _ := individuals.New("doc:1", individuals.Text("v-s:tag", "z"), individuals.Text("v-s:tag", "z"))
	_, err = app.ModifyIndividual(ctx, ticket, subscriptions.OperationAddTo, add, ModifyOptions{})
	is.NoErr(err)

	stored, err = app.GetIndividual(ctx, ticket, "doc:1")
	is.NoErr(err)
	is.Equal(stored.Values("v-s:tag"), []string{"a", "z", "z"})
}

func TestStoringWithoutCreatorKeepsOwnership(t *testing.T) {
	is, ctx, app, _ := setupTest(t)
	alice := login(is, ctx, app, "alice")
	bob := login(is, ctx, app, "bob")

	doc, _ := individuals.New("doc:private", individuals.Label("Secret", "EN"))
	_, err := app.PutIndividuals(ctx, alice, []*individuals.Individual{doc}, ModifyOptions{})
	is.NoErr(err)

	_, err = app.GetIndividual(ctx, bob, "doc:private")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication))

	update, _ := individuals.New("doc:private", individuals.Label("Still secret", "EN"))
	_, err = app.PutIndividuals(ctx, alice, []*individuals.Individual{update}, ModifyOptions{})
	is.NoErr(err)

	_, err = app.GetIndividual(ctx, bob, "doc:private")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication))

	stored, err := app.GetIndividual(ctx, alice, "doc:private")
	is.NoErr(err)
	is.Equal(stored.Values(individuals.VsCreator), []string{"td:Alice"})

	_, err = app.RemoveIndividual(ctx, alice, "doc:private", ModifyOptions{})
	is.NoErr(err)
}

func TestOnlySuperUsersMayChangeCreator(t *testing.T) {
	is, ctx, app, _ := setupTest(t)
	alice := login(is, ctx, app, "alice")
	carol := login(is, ctx, app, "carol")
	admin := login(is, ctx, app, "admin")

	doc, _ := individuals.New("doc:shared", individuals.MemberOf("td:Department"))
	_, err := app.PutIndividuals(ctx, alice, []*individuals.Individual{doc}, ModifyOptions{})
	is.NoErr(err)

	creator := func() []string {
		stored, err := app.GetIndividual(ctx, alice, "doc:shared")
		is.NoErr(err)
		return stored.Values(individuals.VsCreator)
	}

	takeover, _ := individuals.New("doc:shared", individuals.MemberOf("td:Department"), individuals.Creator("td:Carol"))
	_, err = app.PutIndividuals(ctx, carol, []*individuals.Individual{takeover}, ModifyOptions{})
	is.NoErr(err)
	is.Equal(creator(), []string{"td:Alice"})

	setCreator, _ := individuals.New("doc:shared", individuals.Creator("td:Carol"))
	_, err = app.ModifyIndividual(ctx, carol, subscriptions.OperationSetIn, setCreator, ModifyOptions{})
	is.NoErr(err)
	is.Equal(creator(), []string{"td:Alice"})

	dropCreator, _ := individuals.New("doc:shared", individuals.Creator("td:Alice"))
	_, err = app.ModifyIndividual(ctx, carol, subscriptions.OperationRemoveFrom, dropCreator, ModifyOptions{})
	is.NoErr(err)
	is.Equal(creator(), []string{"td:Alice"})

	_, err = app.ModifyIndividual(ctx, admin, subscriptions.OperationSetIn, setCreator, ModifyOptions{})
	is.NoErr(err)

	stored, err := app.GetIndividual(ctx, carol, "doc:shared")
	is.NoErr(err)
	is.Equal(stored.Values(individuals.VsCreator), []string{"td:Carol"})
}

func TestModifyMissingIndividualFails(t *testing.T) {
	is, ctx, app, _ := setupTest(t)
	ticket := login(is, ctx, app, "alice")

	fragment, _ := individuals.New("doc:missing", individuals.Text("v-s:tag", "a"))

	_, err := app.ModifyIndividual(ctx, ticket, subscriptions.OperationAddTo, fragment, ModifyOptions{})
	is.True(errors.Is(err, vedaerrors.ErrNotFound))
}

func TestQueryPagesThroughReadableIndividuals(t *testing.T) {
	is, ctx, app, _ := setupTest(t)
	ticket := login(is, ctx, app, "alice")

	list := []*individuals.Individual{}
	for _, uri := range []string{"doc:3", "doc:1", "doc:2"} {
		i, _ := individuals.New(uri, individuals.Type("v-s:Document"), individuals.Label("Report "+uri, "EN"))
		list = append(list, i)
	}
	note, _ := individuals.New("note:1", individuals.Type("v-s:Note"))
	list = append(list, note)

	_, err := app.PutIndividuals(ctx, ticket, list, ModifyOptions{})
	is.NoErr(err)

	ticket = login(is, ctx, app, "bob")
	hidden, _ := individuals.New("doc:4", individuals.Type("v-s:Document"))
	_, err = app.PutIndividuals(ctx, ticket, []*individuals.Individual{hidden}, ModifyOptions{})
	is.NoErr(err)

	ticket = login(is, ctx, app, "alice")

	qr, err := app.Query(ctx, ticket, QueryRequest{Query: "('rdf:type'=='v-s:Document')", Top: 2})
	is.NoErr(err)
	is.Equal(qr.Result, []string{"doc:1", "doc:2"})
	is.Equal(qr.Estimated, 3) // doc:4 is not readable by alice
	is.Equal(qr.Cursor, 2)

	qr, err = app.Query(ctx, ticket, QueryRequest{Query: "('rdf:type'=='v-s:Document')", From: 2, Top: 2})
	is.NoErr(err)
	is.Equal(qr.Result, []string{"doc:3"})
	is.Equal(qr.Cursor, 3)

	qr, err = app.Query(ctx, ticket, QueryRequest{Query: "('rdf:type'=='v-s:*')", Sort: "'rdfs:label' desc"})
	is.NoErr(err)
	is.Equal(qr.Result, []string{"doc:3", "doc:2", "doc:1", "note:1"})

	qr, err = app.Query(ctx, ticket, QueryRequest{Query: "report DOC:2"})
	is.NoErr(err)
	is.Equal(qr.Result, []string{"doc:2"})
}

func TestGetRightsOrigin(t *testing.T) {
	is, ctx, app, _ := setupTest(t)
	ticket := login(is, ctx, app, "alice")

	doc, _ := individuals.New("doc:1", individuals.MemberOf("td:Department"))
	_, err := app.PutIndividuals(ctx, ticket, []*individuals.Individual{doc}, ModifyOptions{})
	is.NoErr(err)

	origins, err := app.GetRightsOrigin(ctx, ticket, "doc:1")
	is.NoErr(err)
	is.Equal(len(origins), 2) // as creator and as member of the department

	m, err := app.GetMembership(ctx, ticket, "doc:1")
	is.NoErr(err)
	is.Equal(m.Groups, []string{"td:Department"})
}

func TestTrustedTickets(t *testing.T) {
	is, ctx, app, _ := setupTest(t)

	ticket := login(is, ctx, app, "alice")
	_, err := app.GetTicketTrusted(ctx, ticket, "bob")
	is.True(errors.Is(err, vedaerrors.ErrAuthentication))

	ticket = login(is, ctx, app, "service")
	trusted, err := app.GetTicketTrusted(ctx, ticket, "bob")
	is.NoErr(err)
	is.Equal(trusted.UserURI, "td:Bob")
}

func TestFiles(t *testing.T) {
	is, ctx, app, _ := setupTest(t)
	ticket := login(is, ctx, app, "alice")

	is.NoErr(app.UploadFile(ctx, ticket, "file:1", "2024/03", []byte("content")))

	content, err := app.DownloadFile(ctx, ticket, "file:1")
	is.NoErr(err)
	is.Equal(string(content), "content")

	err = app.UploadFile(ctx, ticket, "", "", []byte("content"))
	is.True(errors.Is(err, vedaerrors.ErrBadRequest))
}

type recordingNotifier struct {
	changes []subscriptions.Change
}

func (n *recordingNotifier) Start() error { return nil }
func (n *recordingNotifier) Stop() error  { return nil }
func (n *recordingNotifier) IndividualsChanged(ctx context.Context, change subscriptions.Change) {
	n.changes = append(n.changes, change)
}

func login(is *is.I, ctx context.Context, app PlatformAPI, user string) string {
	ticket, err := app.Authenticate(ctx, user, auth.HashPassword(user+"-password"), "")
	is.NoErr(err)

	return ticket.ID
}

func setupTest(t *testing.T, options ...func(*platformApp)) (*is.I, context.Context, PlatformAPI, *recordingNotifier) {
	is := is.New(t)
	ctx := context.Background()

	cfg, err := LoadConfiguration(strings.NewReader(testUsers))
	is.NoErr(err)

	policies, err := os.Open("../../../../assets/config/authz.rego")
	is.NoErr(err)
	defer policies.Close()

	authorizer, err := authz.NewAuthorizer(ctx, policies)
	is.NoErr(err)

	n := &recordingNotifier{}
	options = append([]func(*platformApp){WithNotifier(n)}, options...)

	app, err := New(ctx, *cfg, storage.NewMemoryStore(), authorizer, options...)
	is.NoErr(err)

	return is, ctx, app, n
}

const testUsers string = `
ticketLifetime: 30m
users:
  - login: alice
    password: alice-password
    uri: td:Alice
    groups: [td:Department]
  - login: bob
    password: bob-password
    uri: td:Bob
  - login: service
    password: service-password
    uri: cfg:VedaSystem
    trusted: true
  - login: carol
    password: carol-password
    uri: td:Carol
    groups: [td:Department]
  - login: admin
    password: admin-password
    uri: td:Admin
    groups: [cfg:SuperUser]
`
