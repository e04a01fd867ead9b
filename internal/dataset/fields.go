package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrFieldType    = errors.New("unexpected field type")
)

// FieldError reports a record that lacks a field its category requires, or
// carries it with the wrong type. Index is -1 when the category itself is malformed.
type FieldError struct {
	Category Category
	Index    int
	Field    string
	Want     string
	Err      error
}

func (e *FieldError) Error() string {
	loc := string(e.Category)
	if e.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", e.Category, e.Index)
	}
	switch {
	case e.Field == "":
		return fmt.Sprintf("dataset: %s: %v (want %s)", loc, e.Err, e.Want)
	case e.Want == "":
		return fmt.Sprintf("dataset: %s: %v %q", loc, e.Err, e.Field)
	default:
		return fmt.Sprintf("dataset: %s: %v %q (want %s)", loc, e.Err, e.Field, e.Want)
	}
}

func (e *FieldError) Unwrap() error { return e.Err }

// fieldReader pulls typed values out of one raw record.
// The first failure sticks; later reads return zero values.
type fieldReader struct {
	cat    Category
	index  int
	prefix string
	m      map[string]any
	err    error
}

func newFieldReader(cat Category, index int, m map[string]any) *fieldReader {
	return &fieldReader{cat: cat, index: index, m: m}
}

func (r *fieldReader) fail(key string, kind error, want string) {
	if r.err != nil {
		return
	}
	r.err = &FieldError{Category: r.cat, Index: r.index, Field: r.prefix + key, Want: want, Err: kind}
}

// float reads a required number.
func (r *fieldReader) float(key string) float64 {
	v, ok := r.m[key]
	if !ok {
		r.fail(key, ErrMissingField, "")
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		r.fail(key, ErrFieldType, "number")
		return 0
	}
	return f
}

// optFloat reads an optional number; absent or null yields def.
func (r *fieldReader) optFloat(key string, def float64) float64 {
	v, ok := r.m[key]
	if !ok || v == nil {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		r.fail(key, ErrFieldType, "number")
		return def
	}
	return f
}

// str reads a required string.
func (r *fieldReader) str(key string) string {
	v, ok := r.m[key]
	if !ok {
		r.fail(key, ErrMissingField, "")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, ErrFieldType, "string")
		return ""
	}
	return s
}

// optString reads an optional free-text value; scalars are rendered as text.
func (r *fieldReader) optString(key string) string {
	v, ok := r.m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// list reads a required list of objects.
func (r *fieldReader) list(key string) []map[string]any {
	v, ok := r.m[key]
	if !ok {
		r.fail(key, ErrMissingField, "")
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		r.fail(key, ErrFieldType, "list")
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			r.fail(fmt.Sprintf("%s[%d]", key, i), ErrFieldType, "object")
			return nil
		}
		out = append(out, obj)
	}
	return out
}

// optStrings reads an optional list of strings.
func (r *fieldReader) optStrings(key string) []string {
	v, ok := r.m[key]
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		r.fail(key, ErrFieldType, "list")
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// nested returns a reader for an object inside this record, reporting
// failures with the given path prefix.
func (r *fieldReader) nested(prefix string, m map[string]any) *fieldReader {
	return &fieldReader{cat: r.cat, index: r.index, prefix: prefix, m: m}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// priceKey returns the record's string price key under field, if any.
func priceKey(m map[string]any, field string) (string, bool) {
	s, ok := m[field].(string)
	return s, ok && s != ""
}
