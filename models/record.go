package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one raw data entry from an exchange response envelope, decoded
// but not yet mapped to a domain type. Keys and values are exactly what the
// exchange reported.
type Record map[string]interface{}

// MappingError reports a record that cannot be mapped because a field that
// is mandatory for the target type's identity is absent or unparsable.
// Optional fields never produce a MappingError.
type MappingError struct {
	Type   string
	Field  string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot map record to %s: field '%s' %s", e.Type, e.Field, e.Reason)
}

// Str returns the string value for key. Absent keys, empty strings and
// non-string values report ok=false.
func (r Record) Str(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// identity extracts a mandatory identity field and converts failures into a
// MappingError for the given domain type.
func (r Record) identity(typ, key string) (string, error) {
	s, ok := r.Str(key)
	if !ok {
		return "", &MappingError{Type: typ, Field: key, Reason: "is missing"}
	}
	return s, nil
}

// optDecimal parses an optional numeric field. Absent or unparsable values
// become nil: the exchange not reporting a number is not the same as zero,
// and unrecognised payloads for non-identity fields must not fail the map.
func (r Record) optDecimal(key string) *decimal.Decimal {
	s, ok := r.Str(key)
	if !ok {
		return nil
	}
	return parseDecimal(s)
}

// optTime parses an optional millisecond-epoch timestamp field.
func (r Record) optTime(key string) *time.Time {
	s, ok := r.Str(key)
	if !ok {
		return nil
	}
	return parseMillis(s)
}

func parseDecimal(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &d
}

// parseMillis converts the exchange's millisecond Unix timestamp strings to
// UTC time values.
func parseMillis(s string) *time.Time {
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}
