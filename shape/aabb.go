package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// ComputeAABB calculates the axis-aligned bounding box of the polytope at
// the given transform by transforming every vertex and extending min/max.
func (p *ConvexPolytope) ComputeAABB(transform Transform) AABB {
	if len(p.vertices) == 0 {
		return AABB{Min: transform.Position, Max: transform.Position}
	}

	world := transform.Apply(p.vertices[0])
	min := world
	max := world

	for i := 1; i < len(p.vertices); i++ {
		world = transform.Apply(p.vertices[i])

		min[0] = math.Min(min[0], world[0])
		min[1] = math.Min(min[1], world[1])
		min[2] = math.Min(min[2], world[2])

		max[0] = math.Max(max[0], world[0])
		max[1] = math.Max(max[1], world[1])
		max[2] = math.Max(max[2], world[2])
	}

	return AABB{Min: min, Max: max}
}
