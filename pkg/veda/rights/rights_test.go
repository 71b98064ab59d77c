package rights

import (
	"errors"
	"testing"

	vedaerrors "github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/matryer/is"
)

func TestRightsFromPermissionStatement(t *testing.T) {
	is := is.New(t)

	i, err := individuals.NewFromJSON([]byte(`{"@":"_","rdf:type":[{"data":"v-s:PermissionStatement","type":"Uri"}],"v-s:canRead":[{"data":true,"type":"Boolean"}],"v-s:canUpdate":[{"data":true,"type":"Boolean"}]}`))
	is.NoErr(err)

	r, err := FromIndividual(i)
	is.NoErr(err)
	is.Equal(*r, Rights{Read: true, Update: true})
	is.Equal(r.String(), "-RU-")
}

func TestRightsRoundTrip(t *testing.T) {
	is := is.New(t)

	r := Rights{Create: true, Read: true, Delete: true}
	parsed, err := FromIndividual(r.ToIndividual())

	is.NoErr(err)
	is.Equal(*parsed, r)
	is.True(!r.ToIndividual().HasProperty(CanUpdate)) // rights not granted are left out
}

func TestRightsWithNonBooleanValueFails(t *testing.T) {
	is := is.New(t)

	i, _ := individuals.New("_", individuals.Text(CanRead, "sometimes"))
	_, err := FromIndividual(i)

	is.True(errors.Is(err, vedaerrors.ErrMalformedValue))
}

func TestMembershipRoundTrip(t *testing.T) {
	is := is.New(t)

	m := Membership{Resource: "td:Doc1", Groups: []string{"cfg:AllUsersGroup", "td:Department"}}
	parsed, err := MembershipFromIndividual(m.ToIndividual())

	is.NoErr(err)
	is.Equal(parsed.Resource, "td:Doc1")
	is.Equal(parsed.Groups, m.Groups)
}
