package platform

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/veda-client/internal/pkg/application/authz"
	"github.com/diwise/veda-client/internal/pkg/application/subscriptions"
	"github.com/diwise/veda-client/internal/pkg/infrastructure/storage"
	"github.com/diwise/veda-client/pkg/veda"
	"github.com/diwise/veda-client/pkg/veda/auth"
	"github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/rights"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/diwise/veda-client/pkg/veda/types/values"
	"github.com/google/uuid"
)

//go:generate moq -rm -out platform_mock.go . PlatformAPI

// PlatformAPI is a small in-process rendition of the platform's HTTP API, used for
// development and for testing clients without a real platform installation.
type PlatformAPI interface {
	Authenticate(ctx context.Context, login, password, secret string) (*veda.Ticket, error)
	IsTicketValid(ctx context.Context, ticket string) bool
	GetTicketTrusted(ctx context.Context, ticket, login string) (*veda.Ticket, error)

	Query(ctx context.Context, ticket string, request QueryRequest) (*veda.QueryResult, error)

	GetIndividual(ctx context.Context, ticket, uri string) (*individuals.Individual, error)
	GetIndividuals(ctx context.Context, ticket string, uris []string) ([]*individuals.Individual, error)
	PutIndividuals(ctx context.Context, ticket string, list []*individuals.Individual, options ModifyOptions) (*veda.OperationResult, error)
	RemoveIndividual(ctx context.Context, ticket, uri string, options ModifyOptions) (*veda.OperationResult, error)
	ModifyIndividual(ctx context.Context, ticket string, operation subscriptions.Operation, fragment *individuals.Individual, options ModifyOptions) (*veda.OperationResult, error)

	GetRights(ctx context.Context, ticket, uri string) (*rights.Rights, error)
	GetRightsOrigin(ctx context.Context, ticket, uri string) ([]*individuals.Individual, error)
	GetMembership(ctx context.Context, ticket, uri string) (*rights.Membership, error)

	GetOperationState(ctx context.Context, moduleID, waitOpID int64) int64

	UploadFile(ctx context.Context, ticket, uri, path string, content []byte) error
	DownloadFile(ctx context.Context, ticket, uri string) ([]byte, error)
}

type QueryRequest struct {
	Query string
	Sort  string
	From  int
	Top   int
	Limit int
}

type ModifyOptions struct {
	PrepareEvents      bool
	AssignedSubsystems uint8
	EventID            string
	TransactionID      string
}

type session struct {
	user    User
	endTime time.Time
}

type platformApp struct {
	users    map[string]User
	lifetime time.Duration

	mu       sync.Mutex
	sessions map[string]session

	lastOpID atomic.Int64

	store      storage.Store
	authorizer authz.Authorizer
	notifier   subscriptions.Notifier

	now func() time.Time
}

// WithNotifier makes the platform report changes made with prepare_events set
func WithNotifier(n subscriptions.Notifier) func(*platformApp) {
	return func(app *platformApp) {
		app.notifier = n
	}
}

// WithClock replaces the clock used for ticket expiry
func WithClock(now func() time.Time) func(*platformApp) {
	return func(app *platformApp) {
		app.now = now
	}
}

func New(ctx context.Context, cfg Config, store storage.Store, authorizer authz.Authorizer, options ...func(*platformApp)) (PlatformAPI, error) {
	app := &platformApp{
		users:      map[string]User{},
		lifetime:   cfg.TicketLifetime,
		sessions:   map[string]session{},
		store:      store,
		authorizer: authorizer,
		now:        time.Now,
	}

	if app.lifetime <= 0 {
		app.lifetime = DefaultTicketLifetime
	}

	for _, u := range cfg.Users {
		if u.Login == "" || u.URI == "" {
			return nil, fmt.Errorf("user configuration requires both login and uri")
		}
		app.users[u.Login] = u
	}

	for _, option := range options {
		option(app)
	}

	return app, nil
}

func (app *platformApp) Authenticate(ctx context.Context, login, password, secret string) (*veda.Ticket, error) {
	user, ok := app.users[login]
	if !ok || auth.HashPassword(user.Password) != password {
		logging.GetFromContext(ctx).Warn("authentication failed", "login", login)
		return nil, errors.NewAuthenticationError("authentication failed for " + login)
	}

	return app.issueTicket(user), nil
}

func (app *platformApp) issueTicket(user User) *veda.Ticket {
	s := session{
		user:    user,
		endTime: app.now().Add(app.lifetime),
	}

	id := uuid.NewString()

	app.mu.Lock()
	app.sessions[id] = s
	app.mu.Unlock()

	return &veda.Ticket{
		ID:      id,
		UserURI: user.URI,
		EndTime: s.endTime.UnixMilli(),
		Result:  200,
	}
}

func (app *platformApp) userFromTicket(ticket string) (User, error) {
	if ticket == "" {
		return User{}, errors.NewNoTicketError("no ticket in request")
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	s, ok := app.sessions[ticket]
	if !ok {
		return User{}, errors.NewAuthenticationError("ticket is not valid")
	}

	if !app.now().Before(s.endTime) {
		delete(app.sessions, ticket)
		return User{}, errors.NewAuthenticationError("ticket has expired")
	}

	return s.user, nil
}

func (app *platformApp) IsTicketValid(ctx context.Context, ticket string) bool {
	_, err := app.userFromTicket(ticket)
	return err == nil
}

func (app *platformApp) GetTicketTrusted(ctx context.Context, ticket, login string) (*veda.Ticket, error) {
	caller, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	if !caller.Trusted {
		return nil, errors.NewAuthenticationError(caller.Login + " is not allowed to request tickets for other users")
	}

	user, ok := app.users[login]
	if !ok {
		return nil, errors.NewAuthenticationError("no such user " + login)
	}

	logging.GetFromContext(ctx).Info("issued trusted ticket", "caller", caller.URI, "user", user.URI)

	return app.issueTicket(user), nil
}

func (app *platformApp) Query(ctx context.Context, ticket string, request QueryRequest) (*veda.QueryResult, error) {
	start := time.Now()

	user, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	matching, err := app.store.Select(ctx, newMatcher(request.Query))
	if err != nil {
		return nil, err
	}

	queryTime := time.Since(start)

	readable := make([]*individuals.Individual, 0, len(matching))
	for _, i := range matching {
		d, err := app.decide(ctx, user, i.URI(), i)
		if err != nil {
			return nil, err
		}
		if d.Rights.Read {
			readable = append(readable, i)
		}
	}

	sortIndividuals(readable, request.Sort)

	from := max(request.From, 0)
	candidates := readable[min(from, len(readable)):]

	if request.Limit > 0 && len(candidates) > request.Limit {
		candidates = candidates[:request.Limit]
	}

	processed := len(candidates)

	if request.Top > 0 && len(candidates) > request.Top {
		candidates = candidates[:request.Top]
	}

	result := &veda.QueryResult{
		Result:        make([]string, 0, len(candidates)),
		Count:         len(candidates),
		Estimated:     len(readable),
		Processed:     processed,
		Cursor:        from + len(candidates),
		QueryTime:     int(queryTime.Milliseconds()),
		AuthorizeTime: int((time.Since(start) - queryTime).Milliseconds()),
		ResultCode:    200,
	}

	for _, i := range candidates {
		result.Result = append(result.Result, i.URI())
	}

	result.TotalTime = int(time.Since(start).Milliseconds())

	return result, nil
}

func (app *platformApp) GetIndividual(ctx context.Context, ticket, uri string) (*individuals.Individual, error) {
	user, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	i, err := app.store.Get(ctx, uri)
	if err != nil {
		return nil, err
	}

	d, err := app.decide(ctx, user, uri, i)
	if err != nil {
		return nil, err
	}

	if !d.Rights.Read {
		return nil, errors.NewAuthenticationError(fmt.Sprintf("%s is not allowed to read %s", user.URI, uri))
	}

	return i, nil
}

// GetIndividuals returns the individuals that exist and are readable by the user,
// in the order they were asked for
func (app *platformApp) GetIndividuals(ctx context.Context, ticket string, uris []string) ([]*individuals.Individual, error) {
	user, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	result := make([]*individuals.Individual, 0, len(uris))

	for _, uri := range uris {
		i, err := app.store.Get(ctx, uri)
		if err != nil {
			if stderrors.Is(err, errors.ErrNotFound) {
				continue
			}
			return nil, err
		}

		d, err := app.decide(ctx, user, uri, i)
		if err != nil {
			return nil, err
		}

		if d.Rights.Read {
			result = append(result, i)
		}
	}

	return result, nil
}

// PutIndividuals stores all individuals or none of them. Rights are checked for every
// individual before anything is stored.
func (app *platformApp) PutIndividuals(ctx context.Context, ticket string, list []*individuals.Individual, options ModifyOptions) (*veda.OperationResult, error) {
	user, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return nil, errors.NewBadRequestError("nothing to store")
	}

	prepared := make([]*individuals.Individual, 0, len(list))

	for _, i := range list {
		if i == nil {
			return nil, errors.NewBadRequestError("individual must not be null")
		}

		existing, err := app.existing(ctx, i.URI())
		if err != nil {
			return nil, err
		}

		d, err := app.decide(ctx, user, i.URI(), existing)
		if err != nil {
			return nil, err
		}

		if existing == nil && !d.Rights.Create {
			return nil, errors.NewAuthenticationError(fmt.Sprintf("%s is not allowed to create %s", user.URI, i.URI()))
		}

		if existing != nil && !d.Rights.Update {
			return nil, errors.NewAuthenticationError(fmt.Sprintf("%s is not allowed to update %s", user.URI, i.URI()))
		}

		i = i.Clone()
		if existing == nil && !i.HasProperty(individuals.VsCreator) {
			individuals.Creator(user.URI)(i)
		}

		if existing != nil && !user.IsSuperUser() {
			i.SetProperty(individuals.VsCreator, existing.GetProperty(individuals.VsCreator))
		}

		prepared = append(prepared, i)
	}

	err = app.store.Put(ctx, prepared...)
	if err != nil {
		return nil, err
	}

	return app.completed(ctx, user, subscriptions.OperationPut, prepared, options), nil
}

func (app *platformApp) RemoveIndividual(ctx context.Context, ticket, uri string, options ModifyOptions) (*veda.OperationResult, error) {
	user, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	existing, err := app.store.Get(ctx, uri)
	if err != nil {
		return nil, err
	}

	d, err := app.decide(ctx, user, uri, existing)
	if err != nil {
		return nil, err
	}

	if !d.Rights.Delete {
		return nil, errors.NewAuthenticationError(fmt.Sprintf("%s is not allowed to remove %s", user.URI, uri))
	}

	err = app.store.Remove(ctx, uri)
	if err != nil {
		return nil, err
	}

	return app.completed(ctx, user, subscriptions.OperationRemove, []*individuals.Individual{existing}, options), nil
}

// ModifyIndividual applies a fragment to a stored individual. Values are treated as a
// multiset per property: add_to appends every value, set_in replaces whole properties
// and remove_from drops one stored occurrence per value in the fragment.
//
// Only superusers may change the creator of an individual.
func (app *platformApp) ModifyIndividual(ctx context.Context, ticket string, operation subscriptions.Operation, fragment *individuals.Individual, options ModifyOptions) (*veda.OperationResult, error) {
	user, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	if fragment == nil {
		return nil, errors.NewBadRequestError("individual must not be null")
	}

	stored, err := app.store.Get(ctx, fragment.URI())
	if err != nil {
		return nil, err
	}

	d, err := app.decide(ctx, user, stored.URI(), stored)
	if err != nil {
		return nil, err
	}

	if !d.Rights.Update {
		return nil, errors.NewAuthenticationError(fmt.Sprintf("%s is not allowed to update %s", user.URI, stored.URI()))
	}

	if !user.IsSuperUser() {
		fragment = fragment.Clone()
		fragment.RemoveProperty(individuals.VsCreator)
	}

	switch operation {
	case subscriptions.OperationAddTo:
		fragment.ForEachProperty(func(property string, vals []values.Value) {
			stored.Add(property, vals...)
		})
	case subscriptions.OperationSetIn:
		fragment.ForEachProperty(func(property string, vals []values.Value) {
			stored.SetProperty(property, vals)
		})
	case subscriptions.OperationRemoveFrom:
		fragment.ForEachProperty(func(property string, vals []values.Value) {
			remaining := stored.GetProperty(property)
			for _, v := range vals {
				if idx := slices.IndexFunc(remaining, v.Equal); idx >= 0 {
					remaining = slices.Delete(remaining, idx, idx+1)
				}
			}
			stored.SetProperty(property, remaining)
		})
	default:
		return nil, errors.NewBadRequestError(fmt.Sprintf("unsupported operation %q", operation))
	}

	err = app.store.Put(ctx, stored)
	if err != nil {
		return nil, err
	}

	return app.completed(ctx, user, operation, []*individuals.Individual{stored}, options), nil
}

func (app *platformApp) GetRights(ctx context.Context, ticket, uri string) (*rights.Rights, error) {
	user, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	existing, err := app.existing(ctx, uri)
	if err != nil {
		return nil, err
	}

	d, err := app.decide(ctx, user, uri, existing)
	if err != nil {
		return nil, err
	}

	r := d.Rights
	return &r, nil
}

// GetRightsOrigin returns one permission statement per subject or group that grants
// the user any rights on the individual
func (app *platformApp) GetRightsOrigin(ctx context.Context, ticket, uri string) ([]*individuals.Individual, error) {
	user, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	existing, err := app.existing(ctx, uri)
	if err != nil {
		return nil, err
	}

	d, err := app.decide(ctx, user, uri, existing)
	if err != nil {
		return nil, err
	}

	statements := make([]*individuals.Individual, 0, len(d.Origins))
	for _, origin := range d.Origins {
		s := d.Rights.ToIndividual()
		individuals.Ref(rights.PermissionSubject, origin)(s)
		individuals.Ref(rights.PermissionObject, uri)(s)
		statements = append(statements, s)
	}

	return statements, nil
}

func (app *platformApp) GetMembership(ctx context.Context, ticket, uri string) (*rights.Membership, error) {
	_, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	existing, err := app.existing(ctx, uri)
	if err != nil {
		return nil, err
	}

	m := &rights.Membership{Resource: uri, Groups: []string{}}
	if existing != nil {
		m.Groups = existing.Values(individuals.VsMemberOf)
	}

	return m, nil
}

// GetOperationState returns the id of the last completed operation. All modules of
// the stub apply changes synchronously, so the module id does not matter.
func (app *platformApp) GetOperationState(ctx context.Context, moduleID, waitOpID int64) int64 {
	return app.lastOpID.Load()
}

func (app *platformApp) UploadFile(ctx context.Context, ticket, uri, path string, content []byte) error {
	user, err := app.userFromTicket(ticket)
	if err != nil {
		return err
	}

	if uri == "" {
		return errors.NewBadRequestError("file uri must not be empty")
	}

	err = app.store.PutFile(ctx, uri, content)
	if err != nil {
		return err
	}

	logging.GetFromContext(ctx).Info("file uploaded", "uri", uri, "path", path, "size", len(content), "user", user.URI)

	return nil
}

func (app *platformApp) DownloadFile(ctx context.Context, ticket, uri string) ([]byte, error) {
	_, err := app.userFromTicket(ticket)
	if err != nil {
		return nil, err
	}

	return app.store.File(ctx, uri)
}

func (app *platformApp) existing(ctx context.Context, uri string) (*individuals.Individual, error) {
	i, err := app.store.Get(ctx, uri)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return i, nil
}

func (app *platformApp) decide(ctx context.Context, user User, uri string, i *individuals.Individual) (*authz.Decision, error) {
	d, err := app.authorizer.Decide(ctx, authz.Subject{URI: user.URI, Groups: user.Groups}, uri, i)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate rights on %s: %w", uri, err)
	}
	return d, nil
}

func (app *platformApp) completed(ctx context.Context, user User, operation subscriptions.Operation, changed []*individuals.Individual, options ModifyOptions) *veda.OperationResult {
	opID := app.lastOpID.Add(1)

	logging.GetFromContext(ctx).Info("operation completed", "operation", operation, "op_id", opID, "count", len(changed), "user", user.URI)

	if options.PrepareEvents && app.notifier != nil {
		app.notifier.IndividualsChanged(ctx, subscriptions.Change{
			Operation: operation,
			OpID:      opID,
			EventID:   options.EventID,
			UserURI:   user.URI,
			Data:      changed,
		})
	}

	return &veda.OperationResult{OpID: opID, Result: 200}
}
