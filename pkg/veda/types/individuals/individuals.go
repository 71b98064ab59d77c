package individuals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/types/values"
)

// URIKey is the reserved key holding the uri of an individual in its wire representation
const URIKey string = "@"

const (
	RdfType      string = "rdf:type"
	RdfsLabel    string = "rdfs:label"
	RdfsComment  string = "rdfs:comment"
	VsCreated    string = "v-s:created"
	VsCreator    string = "v-s:creator"
	VsDeleted    string = "v-s:deleted"
	VsMemberOf   string = "v-s:memberOf"
	VsAttachment string = "v-s:attachment"
)

type IndividualDecoratorFunc func(i *Individual)

// Individual is a record identified by a uri, holding an ordered list of values per property.
// A property that is present always holds at least one value.
//
// An Individual is not safe for concurrent mutation.
type Individual struct {
	uri        string
	properties map[string][]values.Value
}

func New(uri string, decorators ...IndividualDecoratorFunc) (*Individual, error) {
	if uri == "" {
		return nil, errors.NewInvalidURIError("an individual must have a non empty uri")
	}

	i := &Individual{
		uri:        uri,
		properties: map[string][]values.Value{},
	}

	for _, decorator := range decorators {
		decorator(i)
	}

	return i, nil
}

func NewFromJSON(body []byte) (*Individual, error) {
	i := &Individual{}
	err := json.Unmarshal(body, i)

	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal individual: %w", err)
	}

	return i, nil
}

func NewFromSlice(body []byte) ([]*Individual, error) {
	impls := []*Individual{}
	err := json.Unmarshal(body, &impls)
	if err != nil {
		return nil, err
	}

	for idx, i := range impls {
		if i == nil {
			return nil, fmt.Errorf("element %d is null (%w)", idx, errors.ErrMalformedIndividual)
		}
	}

	return impls, nil
}

// FromDict creates an individual from its wire representation. Keys other than the uri
// key are only treated as properties when they hold an array, anything else is ignored
// so that additions to the wire format on the server side do not break older clients.
func FromDict(payload map[string]any) (*Individual, error) {
	rawURI, ok := payload[URIKey]
	if !ok {
		return nil, errors.NewMalformedIndividualError("individual without a uri")
	}

	uri, ok := rawURI.(string)
	if !ok || uri == "" {
		return nil, errors.NewMalformedIndividualError(fmt.Sprintf("individual uri %v is not a non empty string", rawURI))
	}

	i := &Individual{
		uri:        uri,
		properties: map[string][]values.Value{},
	}

	for k, v := range payload {
		if k == URIKey {
			continue
		}

		list, ok := v.([]any)
		if !ok {
			continue
		}

		items := make([]values.Value, 0, len(list))

		for idx, item := range list {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("value %d of property %s in %s is not an object (%w)", idx, k, uri, errors.ErrMalformedValue)
			}

			val, err := values.FromWireObject(obj)
			if err != nil {
				return nil, fmt.Errorf("failed to parse value %d of property %s in %s: %w", idx, k, uri, err)
			}

			items = append(items, val)
		}

		i.SetProperty(k, items)
	}

	return i, nil
}

// ToDict returns the wire representation of the individual
func (i *Individual) ToDict() map[string]any {
	contents := map[string]any{
		URIKey: i.uri,
	}

	for k, vals := range i.properties {
		objs := make([]any, 0, len(vals))
		for _, v := range vals {
			objs = append(objs, v.ToWireObject())
		}
		contents[k] = objs
	}

	return contents
}

func (i *Individual) URI() string {
	return i.uri
}

// AddValue appends a value to a property, creating the property if needed. Adding the
// same value twice results in two equal entries.
func (i *Individual) AddValue(property, data string, valueType values.Type, decorators ...values.DecoratorFunc) {
	i.Add(property, values.New(data, valueType, decorators...))
}

func (i *Individual) Add(property string, vals ...values.Value) {
	if len(vals) == 0 {
		return
	}

	if i.properties == nil {
		i.properties = map[string][]values.Value{}
	}

	i.properties[property] = append(i.properties[property], vals...)
}

// SetProperty replaces all values of a property. An empty list removes the property.
func (i *Individual) SetProperty(property string, items []values.Value) {
	if len(items) == 0 {
		delete(i.properties, property)
		return
	}

	if i.properties == nil {
		i.properties = map[string][]values.Value{}
	}

	i.properties[property] = slices.Clone(items)
}

// SetPropertyFromWire is like SetProperty but accepts values in their wire representation
func (i *Individual) SetPropertyFromWire(property string, items []map[string]any) error {
	vals := make([]values.Value, 0, len(items))

	for _, item := range items {
		v, err := values.FromWireObject(item)
		if err != nil {
			return fmt.Errorf("failed to set property %s: %w", property, err)
		}
		vals = append(vals, v)
	}

	i.SetProperty(property, vals)
	return nil
}

// GetProperty returns a copy of the values of a property, or an empty list if the
// individual does not have the property.
func (i *Individual) GetProperty(property string) []values.Value {
	vals, ok := i.properties[property]
	if !ok {
		return []values.Value{}
	}

	return slices.Clone(vals)
}

// GetFirstValue returns the data of the first value of a property or defaultValue
// if the property is missing.
func (i *Individual) GetFirstValue(property, defaultValue string) string {
	vals := i.properties[property]
	if len(vals) == 0 {
		return defaultValue
	}

	return vals[0].Data()
}

// Values returns the data of all values of a property in order
func (i *Individual) Values(property string) []string {
	vals := i.properties[property]
	data := make([]string, 0, len(vals))

	for _, v := range vals {
		data = append(data, v.Data())
	}

	return data
}

// Types returns the classes of the individual as stated by its rdf:type property
func (i *Individual) Types() []string {
	return i.Values(RdfType)
}

func (i *Individual) HasProperty(property string) bool {
	_, ok := i.properties[property]
	return ok
}

func (i *Individual) RemoveProperty(property string) {
	delete(i.properties, property)
}

// Properties returns the names of all properties in lexical order
func (i *Individual) Properties() []string {
	names := make([]string, 0, len(i.properties))
	for k := range i.properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (i *Individual) ForEachProperty(callback func(property string, vals []values.Value)) {
	for _, k := range i.Properties() {
		callback(k, slices.Clone(i.properties[k]))
	}
}

func (i *Individual) Clone() *Individual {
	c := &Individual{
		uri:        i.uri,
		properties: make(map[string][]values.Value, len(i.properties)),
	}

	for k, v := range i.properties {
		c.properties[k] = slices.Clone(v)
	}

	return c
}

// Equal reports if both individuals have the same uri and the same values, in the same
// order, for every property.
func (i *Individual) Equal(other *Individual) bool {
	if other == nil || i.uri != other.uri || len(i.properties) != len(other.properties) {
		return false
	}

	for k, vals := range i.properties {
		otherVals, ok := other.properties[k]
		if !ok {
			return false
		}

		if !slices.EqualFunc(vals, otherVals, func(a, b values.Value) bool { return a.Equal(b) }) {
			return false
		}
	}

	return true
}

// Difference returns an individual with the same uri holding the values of i that are
// not in other. Values are compared as multisets per property, so a value added twice
// to i but only once to other is part of the difference once.
func (i *Individual) Difference(other *Individual) *Individual {
	diff := &Individual{
		uri:        i.uri,
		properties: map[string][]values.Value{},
	}

	for k, vals := range i.properties {
		var remaining []values.Value
		if other != nil {
			remaining = slices.Clone(other.properties[k])
		}

		for _, v := range vals {
			idx := slices.IndexFunc(remaining, func(o values.Value) bool { return o.Equal(v) })
			if idx >= 0 {
				remaining = slices.Delete(remaining, idx, idx+1)
				continue
			}
			diff.Add(k, v)
		}
	}

	return diff
}

func (i *Individual) MarshalJSON() ([]byte, error) {
	contents := map[string]any{
		URIKey: i.uri,
	}

	for k, vals := range i.properties {
		contents[k] = vals
	}

	return json.Marshal(&contents)
}

func (i *Individual) UnmarshalJSON(data []byte) error {
	var contents map[string]any

	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()

	err := d.Decode(&contents)
	if err != nil {
		return fmt.Errorf("failed to unmarshal individual: %w", err)
	}

	if contents == nil {
		return errors.NewMalformedIndividualError("individual is not an object")
	}

	parsed, err := FromDict(contents)
	if err != nil {
		return err
	}

	*i = *parsed
	return nil
}
