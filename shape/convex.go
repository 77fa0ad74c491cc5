// Package shape provides convex collision geometry for narrow-phase
// proximity queries.
//
// The central type is ConvexPolytope, a solid bounded by planar convex
// polygonal faces. A polytope is described once by a vertex buffer and a
// face buffer; its vertex-adjacency table is derived eagerly at
// construction and reused by every subsequent support query. Mass
// properties (volume, center of mass, inertia tensor) are integrated
// directly from the surface description.
//
// Once constructed, a polytope is immutable and safe for concurrent reads
// from any number of query goroutines. Rebuilding a polytope with Set while
// other goroutines read it is a data race the caller must prevent.
package shape

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is an ordered list of vertex indices describing one planar convex
// polygon. The winding encodes the outward normal: indices must go
// counter-clockwise when the face is viewed from outside the solid.
// A face has at least 3 vertices.
type Face []uint32

// maxNeighbors is the per-vertex adjacency capacity. Neighbor counts are
// stored in one byte, so a vertex referenced by more than 255 distinct
// edge-neighbors cannot be represented and construction fails.
const maxNeighbors = math.MaxUint8

// DegenerateGeometryError reports a mesh whose adjacency exceeds the
// supported complexity: some vertex accumulated more than 255 distinct
// neighbors. This is a hard limit of the packed neighbor table, not a
// warning.
type DegenerateGeometryError struct {
	Vertex    int
	Neighbors int
}

func (e DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate convex geometry: vertex %d has %d neighbors (max %d)",
		e.Vertex, e.Neighbors, maxNeighbors)
}

// neighborSpan is the per-vertex view into the packed neighbor buffer.
type neighborSpan struct {
	offset uint32
	count  uint8
}

// ConvexPolytope holds the vertex and face buffers of a convex solid along
// with the derived vertex-adjacency table.
//
// Buffers follow shared-ownership semantics: Clone shares the vertex buffer
// between copies and deep-copies only the face buffer, so cloning a large
// mesh does not duplicate its vertices.
type ConvexPolytope struct {
	vertices []mgl64.Vec3
	faces    []Face

	// Packed adjacency, rebuilt by Set.
	neighbors []uint32
	spans     []neighborSpan
}

// NewConvexPolytope builds a polytope from a vertex buffer and a face
// buffer and derives its neighbor table. The faces must be consistently
// wound outward so that the signed volume integral is positive; this is
// not verified here.
func NewConvexPolytope(vertices []mgl64.Vec3, faces []Face) (*ConvexPolytope, error) {
	p := &ConvexPolytope{}
	if err := p.Set(vertices, faces); err != nil {
		return nil, err
	}
	return p, nil
}

// Set replaces the vertex and face buffers and rebuilds the adjacency
// table. Any previously derived data (neighbor spans, mass properties read
// before the call) no longer describes the polytope. Set must not run
// concurrently with readers.
func (p *ConvexPolytope) Set(vertices []mgl64.Vec3, faces []Face) error {
	for fi, face := range faces {
		if len(face) < 3 {
			return fmt.Errorf("face %d has %d vertices, need at least 3", fi, len(face))
		}
		for _, idx := range face {
			if int(idx) >= len(vertices) {
				return fmt.Errorf("face %d references vertex %d, only %d vertices", fi, idx, len(vertices))
			}
		}
	}

	p.vertices = vertices
	p.faces = faces

	return p.fillNeighbors()
}

// Clone produces an independent polytope. The face buffer is deep-copied;
// the vertex buffer and the derived neighbor table are shared read-only
// with the original.
func (p *ConvexPolytope) Clone() *ConvexPolytope {
	faces := make([]Face, len(p.faces))
	for i, face := range p.faces {
		faces[i] = slices.Clone(face)
	}

	return &ConvexPolytope{
		vertices:  p.vertices,
		faces:     faces,
		neighbors: p.neighbors,
		spans:     p.spans,
	}
}

// NumVertices returns the vertex count.
func (p *ConvexPolytope) NumVertices() int { return len(p.vertices) }

// NumFaces returns the face count.
func (p *ConvexPolytope) NumFaces() int { return len(p.faces) }

// Vertex returns the i-th vertex in the local frame.
func (p *ConvexPolytope) Vertex(i int) mgl64.Vec3 { return p.vertices[i] }

// FaceAt returns the i-th face. The returned slice aliases the face buffer
// and must not be mutated.
func (p *ConvexPolytope) FaceAt(i int) Face { return p.faces[i] }

// Neighbors returns the indices of the vertices adjacent to vertex v, in
// ascending order. The returned slice is a view into the packed adjacency
// buffer and must not be mutated.
func (p *ConvexPolytope) Neighbors(v int) []uint32 {
	span := p.spans[v]
	return p.neighbors[span.offset : span.offset+uint32(span.count)]
}

// fillNeighbors derives the undirected vertex-adjacency graph from the
// face buffer. For each face position j, the predecessor and successor
// positions (wrapping around the face) are registered as neighbors of the
// vertex at j. The per-vertex sets are then flattened, sorted ascending,
// into one packed buffer with a per-vertex (offset, count) span.
//
// The build is a pure function of (vertices, faces): re-running it after
// any buffer change fully reconstructs the table.
func (p *ConvexPolytope) fillNeighbors() error {
	sets := make([]map[uint32]struct{}, len(p.vertices))
	total := 0

	register := func(v, neighbor uint32) {
		if sets[v] == nil {
			sets[v] = make(map[uint32]struct{}, 8)
		}
		if _, ok := sets[v][neighbor]; !ok {
			sets[v][neighbor] = struct{}{}
			total++
		}
	}

	for _, face := range p.faces {
		n := len(face)
		for j := 0; j < n; j++ {
			i := (j + n - 1) % n
			k := (j + 1) % n
			register(face[j], face[i])
			register(face[j], face[k])
		}
	}

	packed := make([]uint32, 0, total)
	spans := make([]neighborSpan, len(p.vertices))

	scratch := make([]uint32, 0, maxNeighbors)
	for v := range sets {
		if len(sets[v]) > maxNeighbors {
			return DegenerateGeometryError{Vertex: v, Neighbors: len(sets[v])}
		}

		scratch = scratch[:0]
		for neighbor := range sets[v] {
			scratch = append(scratch, neighbor)
		}
		slices.Sort(scratch)

		spans[v] = neighborSpan{offset: uint32(len(packed)), count: uint8(len(sets[v]))}
		packed = append(packed, scratch...)
	}

	p.neighbors = packed
	p.spans = spans

	return nil
}
