package shape

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mass properties are integrated over the surface by fanning every face
// into triangles around a face anchor, and treating each triangle as a
// signed tetrahedron with the origin as its fourth apex. The face anchor
// is the arithmetic mean of the face's vertices. For irregular polygons
// this is not the true area centroid; the simplification is kept on
// purpose so that results stay bit-compatible with existing consumers.
//
// All three integrals run one pass over the face buffer and are pure
// functions of the current buffers. They assume unit density.

// faceAnchor returns the arithmetic mean of the face's vertices.
func (p *ConvexPolytope) faceAnchor(face Face) mgl64.Vec3 {
	var anchor mgl64.Vec3
	for _, idx := range face {
		anchor = anchor.Add(p.vertices[idx])
	}
	return anchor.Mul(1.0 / float64(len(face)))
}

// ComputeVolume returns the volume of the polytope, assuming consistently
// outward-wound faces. Each fan triangle contributes six times its signed
// tetrahedron volume, and the accumulated total is divided by six.
func (p *ConvexPolytope) ComputeVolume() float64 {
	vol := 0.0
	for _, face := range p.faces {
		anchor := p.faceAnchor(face)
		n := len(face)
		for j := 0; j < n; j++ {
			v1 := p.vertices[face[j]]
			v2 := p.vertices[face[(j+1)%n]]
			vol += v1.Cross(v2).Dot(anchor)
		}
	}
	return vol / 6.0
}

// ComputeCOM returns the center of mass with the origin of the local frame
// as reference.
//
// A degenerate or non-closed polytope accumulates a near-zero total volume
// and the final division amplifies noise or produces Inf/NaN. No guard is
// applied here; feeding a closed, consistently wound mesh is the caller's
// responsibility.
func (p *ConvexPolytope) ComputeCOM() mgl64.Vec3 {
	var com mgl64.Vec3
	vol := 0.0
	for _, face := range p.faces {
		anchor := p.faceAnchor(face)
		n := len(face)
		for j := 0; j < n; j++ {
			v1 := p.vertices[face[j]]
			v2 := p.vertices[face[(j+1)%n]]
			d6v := v1.Cross(v2).Dot(anchor)
			vol += d6v
			com = com.Add(v1.Add(v2).Add(anchor).Mul(d6v))
		}
	}
	return com.Mul(1.0 / (vol * 4.0))
}

// ComputeMomentOfInertia returns the inertia tensor about the origin of
// the local frame, for unit density.
//
// Per fan tetrahedron, the canonical covariance matrix of the unit
// tetrahedron (diagonal 1/60, off-diagonal 1/120) is mapped through the
// matrix whose rows are the three triangle vertices, scaled by six times
// the signed volume, and accumulated into a covariance tensor S. The
// inertia tensor is then trace(S)*I - S.
func (p *ConvexPolytope) ComputeMomentOfInertia() mgl64.Mat3 {
	canonical := mgl64.Mat3{
		1 / 60.0, 1 / 120.0, 1 / 120.0,
		1 / 120.0, 1 / 60.0, 1 / 120.0,
		1 / 120.0, 1 / 120.0, 1 / 60.0,
	}

	var covariance mgl64.Mat3
	for _, face := range p.faces {
		anchor := p.faceAnchor(face)
		n := len(face)
		for j := 0; j < n; j++ {
			v1 := p.vertices[face[j]]
			v2 := p.vertices[face[(j+1)%n]]
			d6v := v1.Cross(v2).Dot(anchor)

			a := mgl64.Mat3FromRows(v1, v2, anchor)
			covariance = covariance.Add(a.Transpose().Mul3(canonical).Mul3(a).Mul(d6v))
		}
	}

	return mgl64.Ident3().Mul(covariance.Trace()).Sub(covariance)
}
