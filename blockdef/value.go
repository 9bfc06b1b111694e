package blockdef

import (
	"fmt"
	"strconv"
)

// ValueKind identifies which variant of a Value is active.
type ValueKind int

const (
	// ValueInvalid is the zero Value.
	ValueInvalid ValueKind = iota
	// ValueBool holds a boolean from a bare true/false identifier.
	ValueBool
	// ValueInt holds a signed 64-bit integer.
	ValueInt
	// ValueFloat holds a 64-bit float.
	ValueFloat
	// ValueString holds an unescaped quoted string.
	ValueString
	// ValueIdent holds a bare identifier other than true/false.
	ValueIdent
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueBool:
		return "bool"
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueString:
		return "string"
	case ValueIdent:
		return "identifier"
	default:
		return "invalid"
	}
}

// Value is a tagged union over the value forms an unrecognized
// assignment can take. Exactly one variant is active.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	text string
}

// BoolValue returns a Value holding a bool.
func BoolValue(v bool) Value { return Value{kind: ValueBool, b: v} }

// IntValue returns a Value holding a signed 64-bit integer.
func IntValue(v int64) Value { return Value{kind: ValueInt, i: v} }

// FloatValue returns a Value holding a 64-bit float.
func FloatValue(v float64) Value { return Value{kind: ValueFloat, f: v} }

// StringValue returns a Value holding a string.
func StringValue(v string) Value { return Value{kind: ValueString, text: v} }

// IdentValue returns a Value holding a bare identifier.
func IdentValue(v string) Value { return Value{kind: ValueIdent, text: v} }

// Kind returns the active variant.
func (v Value) Kind() ValueKind { return v.kind }

// Bool returns the bool variant, or false if another variant is active.
func (v Value) Bool() bool { return v.b }

// Int returns the int variant, or 0 if another variant is active.
func (v Value) Int() int64 { return v.i }

// Float returns the float variant, or 0 if another variant is active.
func (v Value) Float() float64 { return v.f }

// Text returns the string or identifier variant, or "" otherwise.
func (v Value) Text() string { return v.text }

// MarshalYAML renders the active variant as its natural YAML scalar.
// Identifiers marshal as strings.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case ValueBool:
		return v.b, nil
	case ValueInt:
		return v.i, nil
	case ValueFloat:
		return v.f, nil
	case ValueString, ValueIdent:
		return v.text, nil
	default:
		return nil, nil
	}
}

// String returns a debug rendering of the value.
func (v Value) String() string {
	switch v.kind {
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueString:
		return fmt.Sprintf("%q", v.text)
	case ValueIdent:
		return v.text
	default:
		return "<invalid>"
	}
}

// UnknownBlock holds the assignments of a block whose tag is not
// declared in the schema. Keys are lowercased (key matching is
// case-insensitive throughout the format).
type UnknownBlock struct {
	Assignments map[string]Value
}

// Extras captures assignments and blocks that the schema does not
// declare. Embed it in a result or block type to preserve unknown
// input instead of discarding it:
//
//	type Material struct {
//	    Name   string `def:"name"`
//	    Passes []Pass `def:"pass"`
//	    blockdef.Extras
//	}
//
// Maps are keyed by the lowercased source spelling. UnknownBlocks
// lists preserve declaration order.
type Extras struct {
	UnknownAssignments map[string]Value
	UnknownBlocks      map[string][]*UnknownBlock
}

func (e *Extras) addAssignment(name string, v Value) {
	if e.UnknownAssignments == nil {
		e.UnknownAssignments = make(map[string]Value)
	}
	e.UnknownAssignments[name] = v
}

func (e *Extras) addBlock(tag string, b *UnknownBlock) {
	if e.UnknownBlocks == nil {
		e.UnknownBlocks = make(map[string][]*UnknownBlock)
	}
	e.UnknownBlocks[tag] = append(e.UnknownBlocks[tag], b)
}
