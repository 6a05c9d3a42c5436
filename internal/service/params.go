package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tuanvumaihuynh/pricelist/internal/apperr"
)

// Optional distinguishes an absent JSON key from an explicit null and from a
// set value. The zero value means the key was absent.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// UnmarshalJSON implements [json.Unmarshaler]. It is only invoked for keys
// that are present in the payload, so Present is accurate after decoding.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// NumericInput is a decimal field of a partial update. It accepts a JSON
// number, a numeric string, an empty string or null. Empty string and null
// decode as present-but-unset; a non-numeric string fails with
// [apperr.InvalidNumericInputErr].
type NumericInput struct {
	Present bool
	Valid   bool
	Value   float64
}

func (n *NumericInput) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return apperr.InvalidNumericInputErr.WrapParent(err)
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apperr.InvalidNumericInputErr.WrapParent(err)
		}
		n.Valid = true
		n.Value = value
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return apperr.InvalidNumericInputErr.WrapParent(err)
	}
	n.Valid = true
	n.Value = value
	return nil
}

// IntegerInput is an integer field of a partial update, with the same input
// forms as [NumericInput].
type IntegerInput struct {
	Present bool
	Valid   bool
	Value   int
}

func (n *IntegerInput) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return apperr.InvalidNumericInputErr.WrapParent(err)
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperr.InvalidNumericInputErr.WrapParent(err)
		}
		n.Valid = true
		n.Value = int(value)
		return nil
	}

	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return apperr.InvalidNumericInputErr.WrapParent(err)
	}
	n.Valid = true
	n.Value = value
	return nil
}
