// Package mesh loads convex polytopes from TOML documents and builds the
// usual primitive solids procedurally.
package mesh

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/akmonengine/hull/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// Document is the on-disk description of a convex mesh.
//
// Vertices are triples of coordinates in the local frame, optionally
// multiplied by scale. Faces list vertex indices wound counter-clockwise
// when seen from outside the solid.
type Document struct {
	Name     string      `toml:"name"`
	Scale    float64     `toml:"scale"`
	Vertices [][]float64 `toml:"vertices"`
	Faces    [][]uint32  `toml:"faces"`
}

// Load reads a TOML mesh file and builds the polytope it describes.
func Load(path string) (*shape.ConvexPolytope, error) {
	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("decode mesh file %s: %w", path, err)
	}

	polytope, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("build mesh %s: %w", path, err)
	}

	return polytope, nil
}

// Decode reads a TOML mesh document from a reader and builds its polytope.
func Decode(r io.Reader) (*shape.ConvexPolytope, error) {
	var doc Document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode mesh: %w", err)
	}

	return doc.Build()
}

// Build validates the document and constructs its polytope.
func (d *Document) Build() (*shape.ConvexPolytope, error) {
	scale := d.Scale
	if scale == 0 {
		scale = 1
	}

	vertices := make([]mgl64.Vec3, len(d.Vertices))
	for i, coords := range d.Vertices {
		if len(coords) != 3 {
			return nil, fmt.Errorf("vertex %d has %d coordinates, want 3", i, len(coords))
		}
		vertices[i] = mgl64.Vec3{coords[0] * scale, coords[1] * scale, coords[2] * scale}
	}

	faces := make([]shape.Face, len(d.Faces))
	for i, indices := range d.Faces {
		faces[i] = shape.Face(indices)
	}

	return shape.NewConvexPolytope(vertices, faces)
}
