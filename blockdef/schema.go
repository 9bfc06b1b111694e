package blockdef

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// PostProcessor is implemented by result types that want a hook run
// after a fully error-free parse. Parse invokes it exactly once,
// before returning.
type PostProcessor interface {
	PostProcess()
}

type scalarKind int

const (
	scalarBool scalarKind = iota
	scalarInt
	scalarUint
	scalarFloat
	scalarString
)

// want returns the value description used in type-mismatch messages.
func (k scalarKind) want() string {
	switch k {
	case scalarBool:
		return "true or false"
	case scalarInt, scalarUint:
		return "an integer"
	case scalarFloat:
		return "a number"
	case scalarString:
		return "a quoted string"
	default:
		return "a value"
	}
}

// scalarField binds a recognized key to a declared struct field.
type scalarField struct {
	name  string // lowercased key
	index []int
	kind  scalarKind
	bits  int // 32 or 64; 0 for bool and string
}

// blockField binds a recognized block tag to a declared list field.
type blockField struct {
	name     string // lowercased tag
	index    []int
	elemType reflect.Type // struct type of the list element
	ptr      bool         // element is *T rather than T
	child    *schema
}

// schema is the recognized-key table for one result type. Built once
// per type and shared read-only across parses.
type schema struct {
	typ     reflect.Type
	scalars map[string]*scalarField
	blocks  map[string]*blockField
	extras  []int // field index of an embedded Extras, nil if absent
}

var extrasType = reflect.TypeOf(Extras{})

// schemaCache holds one schema per result type for the process
// lifetime. Concurrent first-time builds race benignly: construction
// is a pure function of the type and LoadOrStore keeps one winner.
var schemaCache sync.Map // reflect.Type -> *schema

func schemaFor(t reflect.Type) *schema {
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*schema)
	}
	s := newSchema(t, true)
	actual, _ := schemaCache.LoadOrStore(t, s)
	return actual.(*schema)
}

// newSchema walks the declared fields of t. Scalar fields become
// recognized keys, slice-of-struct fields become recognized block
// tags (top level only; block types hold scalars, one level of
// nesting), and anything else is not part of the schema.
func newSchema(t reflect.Type, allowBlocks bool) *schema {
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("blockdef: schema type %s is not a struct", t))
	}

	s := &schema{
		typ:     t,
		scalars: make(map[string]*scalarField),
		blocks:  make(map[string]*blockField),
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == extrasType {
			s.extras = f.Index
			continue
		}
		if !f.IsExported() {
			continue
		}
		name, skip := fieldKeyName(f)
		if skip {
			continue
		}

		if kind, bits, ok := scalarKindOf(f.Type); ok {
			s.scalars[name] = &scalarField{
				name:  name,
				index: f.Index,
				kind:  kind,
				bits:  bits,
			}
			continue
		}

		if allowBlocks && f.Type.Kind() == reflect.Slice {
			elem := f.Type.Elem()
			ptr := false
			if elem.Kind() == reflect.Pointer {
				elem = elem.Elem()
				ptr = true
			}
			if elem.Kind() == reflect.Struct {
				s.blocks[name] = &blockField{
					name:     name,
					index:    f.Index,
					elemType: elem,
					ptr:      ptr,
					child:    newSchema(elem, false),
				}
			}
		}
	}

	return s
}

// fieldKeyName returns the lowercased key name for a field: the `def`
// tag if present, the lowercased field name otherwise. A tag of "-"
// excludes the field.
func fieldKeyName(f reflect.StructField) (name string, skip bool) {
	tag := f.Tag.Get("def")
	if tag == "" {
		return strings.ToLower(f.Name), false
	}
	name, _, _ = strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	if name == "" {
		name = f.Name
	}
	return strings.ToLower(name), false
}

func scalarKindOf(t reflect.Type) (kind scalarKind, bits int, ok bool) {
	switch t.Kind() {
	case reflect.Bool:
		return scalarBool, 0, true
	case reflect.Int32:
		return scalarInt, 32, true
	case reflect.Int, reflect.Int64:
		return scalarInt, 64, true
	case reflect.Uint32:
		return scalarUint, 32, true
	case reflect.Uint, reflect.Uint64:
		return scalarUint, 64, true
	case reflect.Float32:
		return scalarFloat, 32, true
	case reflect.Float64:
		return scalarFloat, 64, true
	case reflect.String:
		return scalarString, 0, true
	default:
		return 0, 0, false
	}
}
