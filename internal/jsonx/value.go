// Package jsonx provides a tagged-union representation of decoded JSON.
//
// Object member order and numeric literals survive a Decode/MarshalJSON
// round trip byte-for-byte, which the normalizer relies on for its
// pretty-printed fallbacks.
package jsonx

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind enumerates the JSON value kinds
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Member is one key/value pair of an object, in document position
type Member struct {
	Key   string
	Value Value
}

// Value is a single JSON value of any kind. The zero Value is null.
type Value struct {
	kind    Kind
	boolVal bool
	numVal  json.Number
	strVal  string
	items   []Value
	members []Member
}

// Null returns the JSON null value
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a JSON boolean
func Bool(b bool) Value {
	return Value{kind: KindBool, boolVal: b}
}

// Number returns a JSON number carrying the given literal
func Number(n json.Number) Value {
	return Value{kind: KindNumber, numVal: n}
}

// NumberFloat returns a JSON number from a float64
func NumberFloat(f float64) Value {
	return Value{kind: KindNumber, numVal: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// NumberInt returns a JSON number from an int64
func NumberInt(i int64) Value {
	return Value{kind: KindNumber, numVal: json.Number(strconv.FormatInt(i, 10))}
}

// String returns a JSON string
func String(s string) Value {
	return Value{kind: KindString, strVal: s}
}

// Array returns a JSON array of the given elements
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object returns a JSON object with the given members in order.
// A duplicate key keeps its first position and takes the last value.
func Object(members ...Member) Value {
	v := Value{kind: KindObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		v.setMember(m.Key, m.Value)
	}
	return v
}

func (v *Value) setMember(key string, val Value) {
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = val
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Kind reports the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// BoolVal returns the boolean payload (false for non-bools)
func (v Value) BoolVal() bool {
	return v.kind == KindBool && v.boolVal
}

// Num returns the numeric literal (empty for non-numbers)
func (v Value) Num() json.Number {
	return v.numVal
}

// Str returns the string payload (empty for non-strings)
func (v Value) Str() string {
	return v.strVal
}

// Items returns the elements of an array (nil otherwise)
func (v Value) Items() []Value {
	return v.items
}

// Members returns the members of an object in document order (nil otherwise)
func (v Value) Members() []Member {
	return v.members
}

// Len returns the member count of an object or element count of an array
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.items)
	default:
		return 0
	}
}

// Get looks up an object member by key
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Truthy reports whether the value is truthy in the coalescing sense:
// null, false, zero, "" and empty containers are falsy, everything else
// is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.boolVal
	case KindNumber:
		if f, err := v.numVal.Float64(); err == nil {
			return f != 0
		}
		return v.numVal != ""
	case KindString:
		return v.strVal != ""
	case KindArray:
		return len(v.items) > 0
	case KindObject:
		return len(v.members) > 0
	default:
		return false
	}
}

// Text returns the human-readable string form of the value: strings
// unquoted, numbers as their literal, booleans and null as their JSON
// spellings, containers as compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.numVal.String()
	case KindString:
		return v.strVal
	default:
		return v.JSONString()
	}
}

// MarshalJSON encodes the value compactly, preserving member order and
// numeric literals.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.writeCompact(&buf)
	return buf.Bytes(), nil
}

// JSONString returns the compact JSON encoding as a string
func (v Value) JSONString() string {
	var buf bytes.Buffer
	v.writeCompact(&buf)
	return buf.String()
}

func (v Value) writeCompact(buf *bytes.Buffer) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.boolVal {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		writeNumber(buf, v.numVal)
	case KindString:
		writeString(buf, v.strVal)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.writeCompact(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, m.Key)
			buf.WriteByte(':')
			m.Value.writeCompact(buf)
		}
		buf.WriteByte('}')
	}
}

// Pretty returns a 2-space indented rendering of the value, reproducible
// byte-for-byte for the same input.
func (v Value) Pretty() string {
	var buf bytes.Buffer
	v.writePretty(&buf, 0)
	return buf.String()
}

func (v Value) writePretty(buf *bytes.Buffer, depth int) {
	switch v.kind {
	case KindArray:
		if len(v.items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, item := range v.items {
			if i > 0 {
				buf.WriteString(",\n")
			}
			writeIndent(buf, depth+1)
			item.writePretty(buf, depth+1)
		}
		buf.WriteByte('\n')
		writeIndent(buf, depth)
		buf.WriteByte(']')
	case KindObject:
		if len(v.members) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, m := range v.members {
			if i > 0 {
				buf.WriteString(",\n")
			}
			writeIndent(buf, depth+1)
			writeString(buf, m.Key)
			buf.WriteString(": ")
			m.Value.writePretty(buf, depth+1)
		}
		buf.WriteByte('\n')
		writeIndent(buf, depth)
		buf.WriteByte('}')
	default:
		v.writeCompact(buf)
	}
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func writeNumber(buf *bytes.Buffer, n json.Number) {
	// A literal that came through Decode is already valid JSON; anything
	// hand-built that does not parse is re-encoded defensively.
	s := n.String()
	if s == "" {
		buf.WriteByte('0')
		return
	}
	if json.Valid([]byte(s)) {
		buf.WriteString(s)
		return
	}
	if f, err := n.Float64(); err == nil {
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		return
	}
	buf.WriteByte('0')
}

func writeString(buf *bytes.Buffer, s string) {
	encoded, err := json.Marshal(s)
	if err != nil {
		buf.WriteString(`""`)
		return
	}
	buf.Write(encoded)
}
