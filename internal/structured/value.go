// Package structured wraps decoded JSON documents so callers can walk nested
// keys without type assertions. A lookup that falls off the document yields an
// absent Value instead of an error.
package structured

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind describes what a Value holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindObject
)

// Value is an immutable view over decoded JSON. The zero Value is absent.
type Value struct {
	raw     any
	present bool
}

// Field is one key of an object Value.
type Field struct {
	Key   string
	Value Value
}

// Absent returns the absent marker.
func Absent() Value { return Value{} }

// Of wraps an already decoded value. JSON null (nil) is absent.
func Of(v any) Value {
	if v == nil {
		return Value{}
	}
	return Value{raw: v, present: true}
}

// Parse decodes a JSON document. Empty input and the literal null decode to
// an absent Value.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Absent(), nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Absent(), fmt.Errorf("structured: decode: %w", err)
	}
	return Of(v), nil
}

// Kind reports the kind of the held value.
func (v Value) Kind() Kind {
	if !v.present {
		return KindAbsent
	}
	switch v.raw.(type) {
	case string:
		return KindString
	case json.Number, float64, int, int64:
		return KindNumber
	case bool:
		return KindBool
	case []any:
		return KindList
	case map[string]any:
		return KindObject
	default:
		return KindAbsent
	}
}

// IsAbsent reports whether the value is missing or null.
func (v Value) IsAbsent() bool { return v.Kind() == KindAbsent }

// Get walks object keys in order. Any missing key, null, or non-object step
// yields Absent.
func (v Value) Get(path ...string) Value {
	cur := v
	for _, key := range path {
		obj, ok := cur.raw.(map[string]any)
		if !cur.present || !ok {
			return Absent()
		}
		cur = Of(obj[key])
	}
	return cur
}

// AsString returns the value when it is a JSON string.
func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok && v.present
}

// Text renders scalars for display. Absent values and containers render as
// the empty string.
func (v Value) Text() string {
	switch t := v.raw.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// List returns the elements of a list value, or nil.
func (v Value) List() []Value {
	items, ok := v.raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = Of(item)
	}
	return out
}

// Fields returns the keys of an object value sorted by key, or nil.
func (v Value) Fields() []Field {
	obj, ok := v.raw.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, Field{Key: k, Value: Of(obj[k])})
	}
	return out
}

// MarshalJSON encodes the held value; absent encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}
