package rights

import (
	"fmt"

	"github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/diwise/veda-client/pkg/veda/types/values"
)

const (
	PermissionStatementClass string = "v-s:PermissionStatement"
	MembershipClass          string = "v-s:Membership"

	CanCreate string = "v-s:canCreate"
	CanRead   string = "v-s:canRead"
	CanUpdate string = "v-s:canUpdate"
	CanDelete string = "v-s:canDelete"

	PermissionSubject string = "v-s:permissionSubject"
	PermissionObject  string = "v-s:permissionObject"
	Resource          string = "v-s:resource"
)

// Rights is the set of operations a user may perform on an individual
type Rights struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// FromIndividual reads the rights from a permission statement. Rights that are not
// stated are not granted.
func FromIndividual(i *individuals.Individual) (*Rights, error) {
	if i == nil {
		return nil, errors.NewMalformedIndividualError("no permission statement")
	}

	r := &Rights{}

	for _, p := range []struct {
		property string
		target   *bool
	}{
		{CanCreate, &r.Create},
		{CanRead, &r.Read},
		{CanUpdate, &r.Update},
		{CanDelete, &r.Delete},
	} {
		for _, v := range i.GetProperty(p.property) {
			granted, err := v.AsBool()
			if err != nil {
				return nil, errors.NewMalformedValueError(fmt.Sprintf("%s of %s is not a boolean: %s", p.property, i.URI(), v.Data()))
			}
			*p.target = *p.target || granted
		}
	}

	return r, nil
}

// ToIndividual builds a permission statement holding the granted rights. The platform
// uses the anonymous uri "_" for computed statements.
func (r Rights) ToIndividual() *individuals.Individual {
	i, _ := individuals.New("_", individuals.Type(PermissionStatementClass))

	for _, p := range []struct {
		property string
		granted  bool
	}{
		{CanCreate, r.Create},
		{CanRead, r.Read},
		{CanUpdate, r.Update},
		{CanDelete, r.Delete},
	} {
		if p.granted {
			i.Add(p.property, values.Bool(true))
		}
	}

	return i
}

// String returns the rights in the compact CRUD notation, e.g. "-R--"
func (r Rights) String() string {
	flags := []byte("----")
	if r.Create {
		flags[0] = 'C'
	}
	if r.Read {
		flags[1] = 'R'
	}
	if r.Update {
		flags[2] = 'U'
	}
	if r.Delete {
		flags[3] = 'D'
	}
	return string(flags)
}

type Membership struct {
	Resource string   `json:"resource"`
	Groups   []string `json:"groups"`
}

func MembershipFromIndividual(i *individuals.Individual) (*Membership, error) {
	if i == nil {
		return nil, errors.NewMalformedIndividualError("no membership")
	}

	return &Membership{
		Resource: i.GetFirstValue(Resource, ""),
		Groups:   i.Values(individuals.VsMemberOf),
	}, nil
}

func (m Membership) ToIndividual() *individuals.Individual {
	i, _ := individuals.New("_", individuals.Type(MembershipClass), individuals.MemberOf(m.Groups...))
	if m.Resource != "" {
		i.Add(Resource, values.URI(m.Resource))
	}
	return i
}
