// Package record gives typed, non-panicking access to loosely shaped JSON
// records read from curation files and interactive prompts.
package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is a decoded JSON object. Numbers are kept as json.Number.
type Record map[string]any

// Kind tags what a looked-up field holds.
type Kind int

const (
	Missing Kind = iota
	Null
	String
	Number
	Bool
	List
	Object
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Field is the result of looking up a key. An absent key yields a Field of
// kind Missing rather than a zero value, so callers can tell "not there"
// apart from "there but the wrong type".
type Field struct {
	kind  Kind
	value any
}

// Has reports whether the key is present, whatever its value.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Field looks up name.
func (r Record) Field(name string) Field {
	v, ok := r[name]
	if !ok {
		return Field{kind: Missing}
	}
	return newField(v)
}

func newField(v any) Field {
	switch v.(type) {
	case nil:
		return Field{kind: Null}
	case string:
		return Field{kind: String, value: v}
	case json.Number, int, int32, int64, float32, float64:
		return Field{kind: Number, value: v}
	case bool:
		return Field{kind: Bool, value: v}
	case []any, []string, []map[string]any, []Record:
		return Field{kind: List, value: v}
	case map[string]any, Record:
		return Field{kind: Object, value: v}
	default:
		return Field{kind: Unknown, value: v}
	}
}

func (f Field) Kind() Kind { return f.kind }
func (f Field) IsMissing() bool { return f.kind == Missing }
func (f Field) Raw() any { return f.value }

// Text returns the value when the field holds a string.
func (f Field) Text() (string, bool) {
	s, ok := f.value.(string)
	return s, ok
}

// Int returns the value when the field holds a whole number.
func (f Field) Int() (int64, bool) {
	switch v := f.value.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case float32:
		if v != float32(int64(v)) {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

// List returns the elements when the field holds a list.
func (f Field) List() ([]Field, bool) {
	switch v := f.value.(type) {
	case []any:
		out := make([]Field, len(v))
		for i, e := range v {
			out[i] = newField(e)
		}
		return out, true
	case []string:
		out := make([]Field, len(v))
		for i, e := range v {
			out[i] = newField(e)
		}
		return out, true
	case []map[string]any:
		out := make([]Field, len(v))
		for i, e := range v {
			out[i] = newField(e)
		}
		return out, true
	case []Record:
		out := make([]Field, len(v))
		for i, e := range v {
			out[i] = newField(e)
		}
		return out, true
	}
	return nil, false
}

// Object returns the nested record when the field holds an object.
func (f Field) Object() (Record, bool) {
	switch v := f.value.(type) {
	case Record:
		return v, true
	case map[string]any:
		return Record(v), true
	}
	return nil, false
}

// Display renders the value for error messages.
func (f Field) Display() string {
	switch f.kind {
	case Missing:
		return "<missing>"
	case Null:
		return "null"
	case String:
		return strconv.Quote(f.value.(string))
	default:
		b, err := json.Marshal(f.value)
		if err != nil {
			return fmt.Sprintf("%v", f.value)
		}
		return string(b)
	}
}
