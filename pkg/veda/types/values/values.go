package values

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/diwise/veda-client/pkg/veda/errors"
)

// Type is the tag naming the semantic kind of a value. The set is open, tags that
// are not listed here are passed through unchanged.
type Type string

const (
	Uri      Type = "Uri"
	String   Type = "String"
	Integer  Type = "Integer"
	Decimal  Type = "Decimal"
	Boolean  Type = "Boolean"
	Datetime Type = "Datetime"
	Binary   Type = "Binary"
)

// IsLanguageTagged reports if values of this type may carry a language code
func (t Type) IsLanguageTagged() bool {
	return t == String
}

// Value is a single typed, optionally language tagged, scalar attached to a property.
// A Value is immutable, change a property by replacing its values.
type Value struct {
	data      string
	valueType Type
	lang      string
}

type DecoratorFunc func(v *Value)

// Lang sets the language code of a value. An empty code means no language.
func Lang(code string) DecoratorFunc {
	return func(v *Value) {
		v.lang = code
	}
}

func New(data string, valueType Type, decorators ...DecoratorFunc) Value {
	v := Value{
		data:      data,
		valueType: valueType,
	}

	for _, decorator := range decorators {
		decorator(&v)
	}

	return v
}

func URI(uri string) Value {
	return New(uri, Uri)
}

func Str(s string) Value {
	return New(s, String)
}

func Text(s, lang string) Value {
	return New(s, String, Lang(lang))
}

func Int(i int64) Value {
	return New(strconv.FormatInt(i, 10), Integer)
}

func Dec(f float64) Value {
	return New(strconv.FormatFloat(f, 'f', -1, 64), Decimal)
}

func Bool(b bool) Value {
	return New(strconv.FormatBool(b), Boolean)
}

// DateTime stores the timestamp as RFC3339 in UTC
func DateTime(t time.Time) Value {
	return New(t.UTC().Format(time.RFC3339), Datetime)
}

func (v Value) Data() string {
	return v.data
}

func (v Value) Type() Type {
	return v.valueType
}

func (v Value) Lang() string {
	return v.lang
}

func (v Value) AsInt() (int64, error) {
	return strconv.ParseInt(v.data, 10, 64)
}

func (v Value) AsFloat() (float64, error) {
	return strconv.ParseFloat(v.data, 64)
}

func (v Value) AsBool() (bool, error) {
	return strconv.ParseBool(v.data)
}

func (v Value) AsTime() (time.Time, error) {
	return time.Parse(time.RFC3339, v.data)
}

// Equal compares data, type and language. A missing language equals an empty one.
func (v Value) Equal(other Value) bool {
	return v.data == other.data && v.valueType == other.valueType && v.lang == other.lang
}

// Validate checks that a language code is only present on language tagged types.
// The check is advisory, nothing in this package enforces it.
func (v Value) Validate() error {
	if v.lang != "" && !v.valueType.IsLanguageTagged() {
		return errors.NewMalformedValueError(
			fmt.Sprintf("language %q is not allowed on values of type %s", v.lang, v.valueType),
		)
	}
	return nil
}

func (v Value) String() string {
	if v.lang != "" {
		return fmt.Sprintf("%q@%s^^%s", v.data, v.lang, v.valueType)
	}
	return fmt.Sprintf("%q^^%s", v.data, v.valueType)
}

// ToWireObject returns the value in the shape used by the platform. The lang key is
// left out entirely when the value has no language.
func (v Value) ToWireObject() map[string]any {
	obj := map[string]any{
		"data": v.wireData(),
		"type": string(v.valueType),
	}

	if v.lang != "" {
		obj["lang"] = v.lang
	}

	return obj
}

func (v Value) wireData() any {
	switch v.valueType {
	case Integer:
		if _, err := strconv.ParseInt(v.data, 10, 64); err == nil && json.Valid([]byte(v.data)) {
			return json.Number(v.data)
		}
	case Decimal:
		if _, err := strconv.ParseFloat(v.data, 64); err == nil && json.Valid([]byte(v.data)) {
			return json.Number(v.data)
		}
	case Boolean:
		switch v.data {
		case "true":
			return true
		case "false":
			return false
		}
	}

	return v.data
}

// FromWireObject is the inverse of ToWireObject
func FromWireObject(obj map[string]any) (Value, error) {
	rawData, ok := obj["data"]
	if !ok || rawData == nil {
		return Value{}, errors.NewMalformedValueError("value object without a data attribute")
	}

	rawType, ok := obj["type"]
	if !ok || rawType == nil {
		return Value{}, errors.NewMalformedValueError("value object without a type attribute")
	}

	typeStr, ok := rawType.(string)
	if !ok {
		return Value{}, errors.NewMalformedValueError(fmt.Sprintf("value type %v not convertible to string", rawType))
	}

	data, err := dataToText(rawData)
	if err != nil {
		return Value{}, err
	}

	v := Value{
		data:      data,
		valueType: Type(typeStr),
	}

	if rawLang, ok := obj["lang"]; ok && rawLang != nil {
		lang, ok := rawLang.(string)
		if !ok {
			return Value{}, errors.NewMalformedValueError(fmt.Sprintf("value lang %v not convertible to string", rawLang))
		}
		v.lang = lang
	}

	return v, nil
}

func dataToText(data any) (string, error) {
	switch typedData := data.(type) {
	case string:
		return typedData, nil
	case json.Number:
		return typedData.String(), nil
	case float64:
		return strconv.FormatFloat(typedData, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(typedData), nil
	case int64:
		return strconv.FormatInt(typedData, 10), nil
	case bool:
		return strconv.FormatBool(typedData), nil
	default:
		return "", errors.NewMalformedValueError(fmt.Sprintf("support for data of type %T not implemented", typedData))
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Data any    `json:"data"`
		Type string `json:"type"`
		Lang string `json:"lang,omitempty"`
	}{
		Data: v.wireData(),
		Type: string(v.valueType),
		Lang: v.lang,
	})
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var obj map[string]any

	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()

	if err := d.Decode(&obj); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	if obj == nil {
		return errors.NewMalformedValueError("value is not an object")
	}

	parsed, err := FromWireObject(obj)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}
