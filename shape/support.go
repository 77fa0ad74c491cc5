package shape

import (
	"github.com/go-gl/mathgl/mgl64"
)

// SupportLocal returns the vertex of the polytope furthest in the given
// direction, in the local frame, together with its index.
//
// The lookup hill-climbs the neighbor table: starting from the hint
// vertex, it repeatedly moves to the adjacent vertex with the strictly
// largest projection onto the direction until no neighbor improves. On a
// convex polytope a local maximum of the projection is the global maximum.
//
// The hint is typically the index cached by a previous query against
// slightly moved geometry, in which case the walk terminates after a few
// steps. An out-of-range hint falls back to vertex 0.
func (p *ConvexPolytope) SupportLocal(direction mgl64.Vec3, hint int) (mgl64.Vec3, int) {
	if hint < 0 || hint >= len(p.vertices) {
		hint = 0
	}

	best := hint
	bestDot := p.vertices[best].Dot(direction)

	for improved := true; improved; {
		improved = false
		for _, neighbor := range p.Neighbors(best) {
			if d := p.vertices[neighbor].Dot(direction); d > bestDot {
				best = int(neighbor)
				bestDot = d
				improved = true
			}
		}
	}

	return p.vertices[best], best
}

// Support returns the vertex furthest in the given direction, in the local
// frame, without a warm-start hint.
func (p *ConvexPolytope) Support(direction mgl64.Vec3) mgl64.Vec3 {
	support, _ := p.SupportLocal(direction, 0)
	return support
}
