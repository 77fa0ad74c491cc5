package mesh

import (
	"github.com/akmonengine/hull/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// Box builds an axis-aligned box polytope from its half-extents: 8
// vertices and 6 outward-wound quadrilateral faces.
func Box(halfExtents mgl64.Vec3) *shape.ConvexPolytope {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	vertices := []mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{+hx, +hy, -hz},
		{-hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{+hx, +hy, +hz},
		{-hx, +hy, +hz},
	}

	faces := []shape.Face{
		{0, 3, 2, 1}, // -Z
		{4, 5, 6, 7}, // +Z
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
		{0, 1, 5, 4}, // -Y
		{3, 7, 6, 2}, // +Y
	}

	polytope, err := shape.NewConvexPolytope(vertices, faces)
	if err != nil {
		// 8 vertices with 3 neighbors each cannot fail construction
		panic(err)
	}

	return polytope
}

// Tetrahedron builds a regular tetrahedron centered on the origin, with
// vertices at distance scale*sqrt(3) from the center.
func Tetrahedron(scale float64) *shape.ConvexPolytope {
	s := scale

	vertices := []mgl64.Vec3{
		{+s, +s, +s},
		{+s, -s, -s},
		{-s, +s, -s},
		{-s, -s, +s},
	}

	faces := []shape.Face{
		{1, 3, 2},
		{0, 2, 3},
		{0, 3, 1},
		{0, 1, 2},
	}

	polytope, err := shape.NewConvexPolytope(vertices, faces)
	if err != nil {
		panic(err)
	}

	return polytope
}

// Octahedron builds a regular octahedron with vertices at distance scale
// on each axis.
func Octahedron(scale float64) *shape.ConvexPolytope {
	s := scale

	vertices := []mgl64.Vec3{
		{+s, 0, 0},
		{-s, 0, 0},
		{0, +s, 0},
		{0, -s, 0},
		{0, 0, +s},
		{0, 0, -s},
	}

	faces := []shape.Face{
		{0, 2, 4},
		{2, 1, 4},
		{1, 3, 4},
		{3, 0, 4},
		{2, 0, 5},
		{1, 2, 5},
		{3, 1, 5},
		{0, 3, 5},
	}

	polytope, err := shape.NewConvexPolytope(vertices, faces)
	if err != nil {
		panic(err)
	}

	return polytope
}
