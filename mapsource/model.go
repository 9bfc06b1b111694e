package mapsource

// Vec2 is a 2-component vector.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3-component vector.
type Vec3 struct {
	X, Y, Z float64
}

// Plane is one bounding plane of a brush: three points defining a
// half-space boundary plus texture-projection parameters.
type Plane struct {
	// Points are the three points defining the plane.
	Points [3]Vec3

	// Texture is the texture name.
	Texture string

	// Valve220 is true when the plane uses the Valve-220 projection
	// dialect (explicit texture axes) rather than legacy offsets.
	Valve220 bool

	// UAxis and VAxis are the texture axes. Zero in the legacy dialect.
	UAxis Vec3
	VAxis Vec3

	// Offsets are the texture offsets. In the Valve-220 dialect these
	// come from the fourth component of each bracketed axis.
	Offsets Vec2

	// Rotation is the texture rotation in degrees.
	Rotation float64

	// Scale is the texture scale.
	Scale Vec2
}

// Brush is a convex solid defined by a list of bounding planes.
type Brush struct {
	Planes []Plane
}

// Entity is a top-level keyed record containing zero or more brushes.
type Entity struct {
	// KeyValues holds the entity's key/value pairs with quotes
	// stripped. Duplicate keys are last-write-wins.
	KeyValues map[string]string

	Brushes []Brush
}

// Classname returns the entity's "classname" value, or "" if unset.
func (e *Entity) Classname() string {
	return e.KeyValues["classname"]
}

// Document is a parsed map source file. The caller owns the document
// once Parse returns it.
type Document struct {
	Entities []Entity
}

// Worldspawn returns the first entity with classname "worldspawn",
// or nil if the document has none.
func (d *Document) Worldspawn() *Entity {
	for i := range d.Entities {
		if d.Entities[i].Classname() == "worldspawn" {
			return &d.Entities[i]
		}
	}
	return nil
}
