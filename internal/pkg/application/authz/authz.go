package authz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/veda-client/pkg/veda/rights"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/open-policy-agent/opa/rego"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("veda-stub/authz")

// Subject is the authenticated user that wants to access a resource
type Subject struct {
	URI    string
	Groups []string
}

// Decision holds the rights granted to a subject and the uris of whatever granted them
type Decision struct {
	Rights  rights.Rights `json:"rights"`
	Origins []string      `json:"origins"`
}

type Authorizer interface {
	Decide(ctx context.Context, subject Subject, resourceURI string, resource *individuals.Individual) (*Decision, error)
}

type authorizerImpl struct {
	preparedQuery rego.PreparedEvalQuery
}

// NewAuthorizer compiles the rego policies read from the provided reader. The policies
// must define data.veda.authz.decision as an object with rights and origins.
func NewAuthorizer(ctx context.Context, policies io.Reader) (Authorizer, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	impl := &authorizerImpl{}

	impl.preparedQuery, err = rego.New(
		rego.Query("x = data.veda.authz.decision"),
		rego.Module("veda.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return impl, nil
}

// Decide evaluates the policies for a subject and a resource. The resource is nil when
// no individual with the given uri exists yet.
func (a *authorizerImpl) Decide(ctx context.Context, subject Subject, resourceURI string, resource *individuals.Individual) (*Decision, error) {
	var err error

	ctx, span := tracer.Start(ctx, "decide",
		trace.WithAttributes(attribute.String("veda-uri", resourceURI)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	groups := subject.Groups
	if groups == nil {
		groups = []string{}
	}

	res := map[string]any{
		"uri":     resourceURI,
		"exists":  resource != nil,
		"creator": "",
		"groups":  []string{},
		"types":   []string{},
	}

	if resource != nil {
		res["creator"] = resource.GetFirstValue(individuals.VsCreator, "")
		res["groups"] = resource.Values(individuals.VsMemberOf)
		res["types"] = resource.Types()
	}

	input := map[string]any{
		"subject": map[string]any{
			"uri":    subject.URI,
			"groups": groups,
		},
		"resource": res,
	}

	results, err := a.preparedQuery.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		err = fmt.Errorf("opa eval failed: %w", err)
		return nil, err
	}

	if len(results) == 0 {
		err = errors.New("authz failed: opa query could not be satisfied")
		return nil, err
	}

	binding, ok := results[0].Bindings["x"].(map[string]any)
	if !ok {
		err = errors.New("opa error: unexpected result type")
		return nil, err
	}

	// the binding is plain json data, so we let encoding/json do the type conversions
	b, err := json.Marshal(binding)
	if err != nil {
		return nil, err
	}

	d := &Decision{}
	err = json.Unmarshal(b, d)
	if err != nil {
		err = fmt.Errorf("opa error: unexpected decision %s: %w", string(b), err)
		return nil, err
	}

	sort.Strings(d.Origins)

	return d, nil
}
