package gametext

import (
	"github.com/quaketools/gametext/blockdef"
	"github.com/quaketools/gametext/mapsource"
)

// Type aliases for the public API - all types come from the format
// subpackages.

// MapDocument is a parsed map source file.
type MapDocument = mapsource.Document

// Entity is a top-level keyed record containing zero or more brushes.
type Entity = mapsource.Entity

// Brush is a convex solid defined by a list of bounding planes.
type Brush = mapsource.Brush

// Plane is one bounding plane of a brush.
type Plane = mapsource.Plane

// Vec2 is a 2-component vector.
type Vec2 = mapsource.Vec2

// Vec3 is a 3-component vector.
type Vec3 = mapsource.Vec3

// MapParseError is a syntax problem in map source text.
type MapParseError = mapsource.ParseError

// DefParseError is a problem in definition source text.
type DefParseError = blockdef.ParseError

// Value is the tagged union holding an unrecognized assignment.
type Value = blockdef.Value

// ValueKind identifies the active variant of a Value.
type ValueKind = blockdef.ValueKind

// ValueKind constants, re-exported.
const (
	ValueInvalid = blockdef.ValueInvalid
	ValueBool    = blockdef.ValueBool
	ValueInt     = blockdef.ValueInt
	ValueFloat   = blockdef.ValueFloat
	ValueString  = blockdef.ValueString
	ValueIdent   = blockdef.ValueIdent
)

// Value constructors, re-exported.
var (
	BoolValue   = blockdef.BoolValue
	IntValue    = blockdef.IntValue
	FloatValue  = blockdef.FloatValue
	StringValue = blockdef.StringValue
	IdentValue  = blockdef.IdentValue
)

// UnknownBlock holds the assignments of an undeclared block tag.
type UnknownBlock = blockdef.UnknownBlock

// Extras captures undeclared assignments and blocks; embed it in a
// schema struct to preserve unknown input.
type Extras = blockdef.Extras

// PostProcessor is the post-parse hook for definition schema types.
type PostProcessor = blockdef.PostProcessor
