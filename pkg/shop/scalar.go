package shop

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The shop backend is loose about scalar shapes: identifiers arrive as
// numbers or strings, flags as booleans or "0"/"1", money as numbers or
// quoted decimals. These types normalize every shape at the decode
// boundary so the services never touch raw JSON quirks.

// ID is a backend identifier, accepted as a JSON string or number and
// normalized to its string form.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Int returns the identifier as an integer, or 0 if it is not numeric.
func (id ID) Int() int {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0
	}
	return n
}

// Flag is a backend boolean, accepted as true/false, 0/1 or "0"/"1".
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "1", "true":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Decimal is a backend money or quantity value. The original text is
// preserved so amounts render exactly as the backend sent them.
type Decimal string

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*d = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Decimal(n.String())
	return nil
}

// MarshalJSON implements json.Marshaler. Decimals serialize as strings.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

// Float64 returns the numeric value, or 0 if the text is not a number.
func (d Decimal) Float64() float64 {
	v, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return 0
	}
	return v
}

// Int returns the value truncated to an integer.
func (d Decimal) Int() int {
	return int(d.Float64())
}

// IsZero reports whether the value is empty or numerically zero.
func (d Decimal) IsZero() bool {
	return d == "" || d.Float64() == 0
}
