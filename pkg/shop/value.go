package shop

import "encoding/json"

// ValueKind tags the shape of a resolved feature value.
type ValueKind int

const (
	// ValueText is a plain string value.
	ValueText ValueKind = iota

	// ValueNumber is a numeric value.
	ValueNumber

	// ValueList is an ordered list of variant labels.
	ValueList
)

// Value is a resolved feature value. The backend shape-shifts the value
// field (string, number or array depending on feature type); Value makes
// the shape explicit instead of passing untyped JSON around.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	List   []string
}

// TextValue returns a text-kinded value.
func TextValue(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

// NumberValue returns a number-kinded value.
func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Number: n}
}

// ListValue returns a list-kinded value.
func ListValue(labels []string) Value {
	if labels == nil {
		labels = []string{}
	}
	return Value{Kind: ValueList, List: labels}
}

// MarshalJSON serializes the value in its underlying shape: a JSON
// string, number or array.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return json.Marshal(v.Number)
	case ValueList:
		return json.Marshal(v.List)
	default:
		return json.Marshal(v.Text)
	}
}
