// Package integration provides integration tests against the fixture
// corpus in testdata/corpus/.
//
// These tests exercise the public API end to end: reading fixture
// files, parsing them, and asserting against the resulting documents.
// Unit-level behavior lives in the owning packages; this package holds
// the cross-cutting cases that need real files on disk.
package integration

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quaketools/gametext"
)

// corpusPath returns the path of a fixture in the test corpus.
func corpusPath(name string) string {
	return filepath.Join("..", "testdata", "corpus", name)
}

// legacyDoc holds the shared parse of room_legacy.map, loaded once.
var (
	legacyDoc  *gametext.MapDocument
	legacyErrs []gametext.MapParseError
	legacyOnce sync.Once
)

func loadLegacy(t *testing.T) *gametext.MapDocument {
	t.Helper()
	legacyOnce.Do(func() {
		var err error
		legacyDoc, legacyErrs, err = gametext.ParseMapFile(corpusPath("room_legacy.map"))
		require.NoError(t, err)
	})
	require.Empty(t, legacyErrs)
	require.NotNil(t, legacyDoc)
	return legacyDoc
}

func TestLegacyMapFixture(t *testing.T) {
	doc := loadLegacy(t)
	require.Len(t, doc.Entities, 3)

	ws := doc.Worldspawn()
	require.NotNil(t, ws)
	require.Equal(t, "gfx/base.wad", ws.KeyValues["wad"])
	require.Equal(t, "Test Chamber", ws.KeyValues["message"])
	require.Len(t, ws.Brushes, 1)
	require.Len(t, ws.Brushes[0].Planes, 6)

	for _, plane := range ws.Brushes[0].Planes {
		require.False(t, plane.Valve220)
	}

	// The fifth plane carries non-default projection values.
	fifth := ws.Brushes[0].Planes[4]
	require.Equal(t, "wall9_8", fifth.Texture)
	require.Equal(t, gametext.Vec2{X: 16, Y: -32}, fifth.Offsets)
	require.Equal(t, float64(90), fifth.Rotation)
	require.Equal(t, gametext.Vec2{X: 0.5, Y: 2}, fifth.Scale)

	// Texture names may start with '*'.
	require.Equal(t, "*water1", ws.Brushes[0].Planes[5].Texture)

	light := doc.Entities[2]
	require.Equal(t, "light", light.Classname())
	require.Equal(t, "300", light.KeyValues["light"])
	require.Empty(t, light.Brushes)
}

func TestValve220MapFixture(t *testing.T) {
	doc, errs, err := gametext.ParseMapFile(corpusPath("room_valve220.map"))
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, doc.Entities, 1)

	planes := doc.Entities[0].Brushes[0].Planes
	require.Len(t, planes, 6)
	for _, plane := range planes {
		require.True(t, plane.Valve220)
		require.Equal(t, gametext.Vec2{X: 8, Y: 16}, plane.Offsets)
	}

	require.Equal(t, gametext.Vec3{X: 0, Y: 1, Z: 0}, planes[0].UAxis)
	require.Equal(t, gametext.Vec3{X: 0, Y: 0, Z: -1}, planes[0].VAxis)
	require.Equal(t, float64(45), planes[3].Rotation)
	require.Equal(t, gametext.Vec2{X: 0.25, Y: 4}, planes[3].Scale)
}

func TestBrokenMapFixture(t *testing.T) {
	doc, errs, err := gametext.ParseMapFile(corpusPath("broken.map"))
	require.NoError(t, err)
	require.Nil(t, doc)

	// One error per malformed entity; the healthy third entity parses
	// but cannot rescue the document.
	require.Len(t, errs, 2)
	for _, pe := range errs {
		require.Positive(t, pe.Line)
		require.Positive(t, pe.Column)
		require.Contains(t, pe.String(), pe.Message)
	}
}

func TestMissingMapFile(t *testing.T) {
	_, _, err := gametext.ParseMapFile(corpusPath("does_not_exist.map"))
	require.Error(t, err)
}

// stage and material mirror the shape of the material fixture.
type stage struct {
	Map   string
	Blend string
	Scale float64
}

type material struct {
	gametext.Extras
	Name     string
	Shine    float64
	Priority int
	Enabled  bool
	Flags    uint32
	Stages   []stage `def:"stage"`
}

func TestMaterialDefFixture(t *testing.T) {
	var mat material
	errs, err := gametext.ParseDefsFile(corpusPath("material.def"), &mat)
	require.NoError(t, err)
	require.Empty(t, errs)

	require.Equal(t, "metal/rusty_panel", mat.Name)
	require.Equal(t, 0.35, mat.Shine)
	require.Equal(t, -2, mat.Priority)
	require.True(t, mat.Enabled)
	require.Equal(t, uint32(0x11), mat.Flags)

	require.Len(t, mat.Stages, 2)
	require.Equal(t, "diffuse", mat.Stages[0].Blend)
	require.Equal(t, "specular", mat.Stages[1].Blend)

	// Undeclared keys and blocks are preserved.
	require.Equal(t, gametext.StringValue("anna"), mat.UnknownAssignments["author"])
	require.Equal(t, gametext.IntValue(42), mat.UnknownAssignments["revision"])
	require.Equal(t, gametext.IdentValue("default_material"), mat.UnknownAssignments["fallback"])

	decals := mat.UnknownBlocks["decal"]
	require.Len(t, decals, 1)
	require.Equal(t, gametext.FloatValue(0.8), decals[0].Assignments["alpha"])
}

func TestBrokenDefFixture(t *testing.T) {
	var mat material
	errs, err := gametext.ParseDefsFile(corpusPath("broken.def"), &mat)
	require.NoError(t, err)

	// Two type mismatches plus the missing ';', which also swallows
	// the following statement during recovery.
	require.Len(t, errs, 3)
	require.Equal(t, "", mat.Name)
	require.Equal(t, 0.0, mat.Shine)
	require.False(t, mat.Enabled)

	// Parsing continued past the errors.
	require.Len(t, mat.Stages, 1)
	require.Equal(t, "textures/metal/ok", mat.Stages[0].Map)
}
