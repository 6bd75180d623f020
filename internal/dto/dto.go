// Package dto normalizes untrusted field mappings into validated records and
// projects loaded entities back into the sparse shapes the boundary
// serializes. Projection is pure: it never reaches back into the store.
package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// FormatError marks input that could not be coerced into the expected shape.
type FormatError struct {
	Field string
	Value any
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("field %q has malformed value %v", e.Field, e.Value)
}

// NormalizePrice accepts a numeric value or a string using either '.' or ','
// as the decimal separator and renders it with exactly two fraction digits
// and '.' as the separator.
func NormalizePrice(raw any) (string, error) {
	var d decimal.Decimal
	switch v := raw.(type) {
	case string:
		parsed, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), ",", "."))
		if err != nil {
			return "", &FormatError{Field: "price", Value: raw}
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(v)
	case float32:
		d = decimal.NewFromFloat32(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case decimal.Decimal:
		d = v
	default:
		return "", &FormatError{Field: "price", Value: raw}
	}
	return d.StringFixed(2), nil
}

func coerceInt(field string, raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, &FormatError{Field: field, Value: raw}
		}
		return n, nil
	default:
		return 0, &FormatError{Field: field, Value: raw}
	}
}

// coerceIDList converts an association id list from any of the shapes raw
// input arrives in. The result is never nil: an empty input list stays an
// empty list, which callers treat differently from an absent one.
func coerceIDList(field string, raw any) ([]uint, error) {
	switch v := raw.(type) {
	case []uint:
		out := make([]uint, len(v))
		copy(out, v)
		return out, nil
	case []int:
		out := make([]uint, 0, len(v))
		for _, n := range v {
			out = append(out, uint(n))
		}
		return out, nil
	case []any:
		out := make([]uint, 0, len(v))
		for _, item := range v {
			n, err := coerceInt(field, item)
			if err != nil {
				return nil, err
			}
			out = append(out, uint(n))
		}
		return out, nil
	default:
		return nil, &FormatError{Field: field, Value: raw}
	}
}

func coerceString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.Itoa(int(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func optionalID(fields map[string]any, key string) (*uint, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil, nil
	}
	n, err := coerceInt(key, raw)
	if err != nil {
		return nil, err
	}
	id := uint(n)
	return &id, nil
}
