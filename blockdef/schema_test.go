package blockdef

import (
	"reflect"
	"testing"

	"github.com/quaketools/gametext/internal/testutil"
)

type schemaSubject struct {
	Extras
	Title    string `def:"name"`
	Count    int32
	Ratio    float32
	Hidden   string `def:"-"`
	internal int
	Entries  []stageDef
	Ints     []int // not a struct slice, not part of the schema
}

func TestSchemaFieldBinding(t *testing.T) {
	sch := schemaFor(reflect.TypeOf(schemaSubject{}))

	testutil.Equal(t, 3, len(sch.scalars), "scalar count")
	testutil.NotNil(t, sch.scalars["name"], "tagged key")
	testutil.NotNil(t, sch.scalars["count"], "lowercased field name")
	testutil.NotNil(t, sch.scalars["ratio"], "float key")
	testutil.Nil(t, sch.scalars["hidden"], "excluded by tag")
	testutil.Nil(t, sch.scalars["internal"], "unexported field")
	testutil.Nil(t, sch.scalars["title"], "tag replaces the field name")

	testutil.Equal(t, 1, len(sch.blocks), "block count")
	testutil.NotNil(t, sch.blocks["entries"], "block tag")
	testutil.Nil(t, sch.blocks["ints"], "non-struct slice ignored")
}

func TestSchemaScalarWidths(t *testing.T) {
	sch := schemaFor(reflect.TypeOf(schemaSubject{}))

	count := sch.scalars["count"]
	testutil.Equal(t, scalarInt, count.kind, "count kind")
	testutil.Equal(t, 32, count.bits, "count bits")

	ratio := sch.scalars["ratio"]
	testutil.Equal(t, scalarFloat, ratio.kind, "ratio kind")
	testutil.Equal(t, 32, ratio.bits, "ratio bits")
}

func TestSchemaIsCached(t *testing.T) {
	a := schemaFor(reflect.TypeOf(schemaSubject{}))
	b := schemaFor(reflect.TypeOf(schemaSubject{}))
	if a != b {
		t.Fatal("expected the same schema instance for repeated lookups")
	}
}

func TestSchemaExtrasDetection(t *testing.T) {
	sch := schemaFor(reflect.TypeOf(schemaSubject{}))
	testutil.NotEmpty(t, sch.extras, "extras index")

	type plain struct{ Name string }
	noExtras := schemaFor(reflect.TypeOf(plain{}))
	testutil.Len(t, noExtras.extras, 0, "no extras")
}

func TestBlockSchemaHasNoNestedBlocks(t *testing.T) {
	type inner struct{ Name string }
	type middle struct {
		Name  string
		Inner []inner
	}
	type outer struct {
		Middles []middle `def:"middle"`
	}

	sch := schemaFor(reflect.TypeOf(outer{}))
	child := sch.blocks["middle"].child
	testutil.NotNil(t, child.scalars["name"], "child scalar")
	testutil.Equal(t, 0, len(child.blocks), "nested blocks")
}

func TestNonStructSchemaPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-struct schema type")
		}
	}()
	newSchema(reflect.TypeOf(42), true)
}
