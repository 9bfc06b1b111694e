package gametext_test

import (
	"testing"

	"github.com/quaketools/gametext"
	"github.com/quaketools/gametext/internal/testutil"
)

func TestParseMap(t *testing.T) {
	source := `{
"classname" "worldspawn"
}`
	doc, errs := gametext.ParseMap([]byte(source))
	testutil.Len(t, errs, 0, "errors")
	testutil.NotNil(t, doc, "document")
	testutil.Equal(t, "worldspawn", doc.Worldspawn().Classname(), "classname")
}

func TestParseMapErrors(t *testing.T) {
	doc, errs := gametext.ParseMap([]byte(`{ "key" }`))
	testutil.Nil(t, doc, "document")
	testutil.NotEmpty(t, errs, "errors")
}

func TestParseDefs(t *testing.T) {
	type settings struct {
		gametext.Extras
		Speed   int
		Enabled bool
	}

	var s settings
	errs := gametext.ParseDefs([]byte(`speed = 120; enabled = true; extra = 1;`), &s)
	testutil.Len(t, errs, 0, "errors")
	testutil.Equal(t, 120, s.Speed, "speed")
	testutil.True(t, s.Enabled, "enabled")
	testutil.Equal(t, gametext.IntValue(1), s.UnknownAssignments["extra"], "extra")
}

func TestValueConstructors(t *testing.T) {
	testutil.Equal(t, gametext.ValueBool, gametext.BoolValue(true).Kind(), "bool kind")
	testutil.Equal(t, gametext.ValueString, gametext.StringValue("x").Kind(), "string kind")
	testutil.Equal(t, int64(7), gametext.IntValue(7).Int(), "int value")
	testutil.Equal(t, 1.5, gametext.FloatValue(1.5).Float(), "float value")
	testutil.Equal(t, "tag", gametext.IdentValue("tag").Text(), "ident text")
}
