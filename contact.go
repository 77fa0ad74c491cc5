package hull

import (
	"github.com/akmonengine/hull/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// None marks an invalid primitive id: the shape is a plain geometry rather
// than a mesh triangle, point-cloud point or octree cell.
const None = -1

// Contact records one detected overlap between two primitives of two
// colliding geometries.
type Contact struct {
	// O1, O2 are the colliding geometries
	O1 shape.CollisionGeometry
	O2 shape.CollisionGeometry

	// B1, B2 identify the contact primitive inside each geometry: the
	// triangle or point id for meshes and point clouds, the cell id for
	// octrees, None for plain shapes
	B1 int
	B2 int

	// Normal points from O1 to O2
	Normal mgl64.Vec3

	// NearestPoints are the witness points of the contact, the first on
	// O1 and the second on O2
	NearestPoints [2]mgl64.Vec3

	// Pos is the contact position in world space
	Pos mgl64.Vec3

	// PenetrationDepth is how far the shapes overlap
	PenetrationDepth float64
}

// NewContact creates a contact between two geometries without any
// geometric information.
func NewContact(o1, o2 shape.CollisionGeometry, b1, b2 int) Contact {
	return Contact{O1: o1, O2: o2, B1: b1, B2: b2}
}

// NewContactAt creates a contact at a world position. The witness points
// are placed half the penetration depth on each side of the position along
// the normal.
func NewContactAt(o1, o2 shape.CollisionGeometry, b1, b2 int, pos, normal mgl64.Vec3, depth float64) Contact {
	return Contact{
		O1: o1, O2: o2, B1: b1, B2: b2,
		Normal:           normal,
		Pos:              pos,
		PenetrationDepth: depth,
		NearestPoints: [2]mgl64.Vec3{
			pos.Sub(normal.Mul(0.5 * depth)),
			pos.Add(normal.Mul(0.5 * depth)),
		},
	}
}

// NewContactWithPoints creates a contact from its two witness points. The
// contact position is their midpoint.
func NewContactWithPoints(o1, o2 shape.CollisionGeometry, b1, b2 int, p1, p2, normal mgl64.Vec3, depth float64) Contact {
	return Contact{
		O1: o1, O2: o2, B1: b1, B2: b2,
		Normal:           normal,
		Pos:              p1.Add(p2).Mul(0.5),
		PenetrationDepth: depth,
		NearestPoints:    [2]mgl64.Vec3{p1, p2},
	}
}

// Less orders contacts lexicographically on their primitive id pair so a
// contact set sorts deterministically for a given geometry pair.
func (c Contact) Less(other Contact) bool {
	if c.B1 == other.B1 {
		return c.B2 < other.B2
	}
	return c.B1 < other.B1
}

// Equal reports exact component-wise equality, including floating-point
// fields. It is meant for regression and determinism testing, not for
// geometric "close enough" comparison.
func (c Contact) Equal(other Contact) bool {
	return c.O1 == other.O1 && c.O2 == other.O2 &&
		c.B1 == other.B1 && c.B2 == other.B2 &&
		c.Normal == other.Normal && c.Pos == other.Pos &&
		c.PenetrationDepth == other.PenetrationDepth
}
