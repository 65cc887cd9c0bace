package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Placeholder is shown in place of a field the service did not return.
const Placeholder = "(none)"

// Object is a decoded response object. It keeps the order in which the
// service sent its fields and distinguishes absent fields from empty ones.
// Nested objects decode to *Object, arrays to []any and numbers to
// json.Number.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject builds an Object from alternating key/value pairs. It is meant
// for tests and fakes.
func NewObject(kv ...any) *Object {
	o := &Object{values: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return o
}

// Set stores value under key, appending key if it is new.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = map[string]any{}
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Keys returns the field names in response order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Has reports whether the field was present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.values[key]
	return ok
}

// Get returns the raw field value.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// String returns the field as text, or Placeholder when it is absent.
func (o *Object) String(key string) string {
	v, ok := o.Get(key)
	if !ok {
		return Placeholder
	}
	return Stringify(v)
}

// Bool interprets the field as a flag. Booleans are taken as is; strings
// are true when they equal "true" in any case. Absent fields are false.
func (o *Object) Bool(key string) bool {
	v, _ := o.Get(key)
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(b, "true")
	}
	return false
}

// Object returns a nested object field, or nil.
func (o *Object) Object(key string) *Object {
	v, _ := o.Get(key)
	return AsObject(v)
}

// Objects returns the objects of a list field. A single object is treated
// as a one-element list, which is how some services encode short lists.
func (o *Object) Objects(key string) []*Object {
	v, ok := o.Get(key)
	if !ok {
		return nil
	}
	return AsObjects(v)
}

// Strings returns a list field as text values. A scalar becomes a
// one-element list.
func (o *Object) Strings(key string) []string {
	v, ok := o.Get(key)
	if !ok {
		return nil
	}
	list := AsList(v)
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, Stringify(item))
	}
	return out
}

// MarshalJSON encodes the object with its fields in response order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving field order.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return err
	}
	obj, ok := v.(*Object)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	*o = *obj
	return nil
}

// Decode parses any JSON value, turning objects into *Object.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &Object{values: map[string]any{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return t, nil
	}
}

// AsObject returns v as an object, or nil.
func AsObject(v any) *Object {
	obj, _ := v.(*Object)
	return obj
}

// AsList returns v as a list. nil yields an empty list and any other
// non-list value a one-element list.
func AsList(v any) []any {
	switch l := v.(type) {
	case nil:
		return nil
	case []any:
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	case []*Object:
		out := make([]any, len(l))
		for i, obj := range l {
			out[i] = obj
		}
		return out
	}
	return []any{v}
}

// AsObjects returns the object elements of v, skipping anything else.
func AsObjects(v any) []*Object {
	var out []*Object
	for _, item := range AsList(v) {
		if obj := AsObject(item); obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

// Stringify renders a decoded value as text.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case *Object:
		b, err := t.MarshalJSON()
		if err != nil {
			return fmt.Sprint(t.values)
		}
		return string(b)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, " ; ")
	}
	return fmt.Sprint(v)
}
