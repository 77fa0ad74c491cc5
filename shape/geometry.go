package shape

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// CollisionGeometry is the interface that all collision shapes must
// implement. It is the surface the narrow-phase solver and the query
// result records see: mass properties for dynamics setup, AABBs for
// broad-phase culling, support queries for iterative closest-point
// algorithms.
type CollisionGeometry interface {
	// ComputeVolume returns the shape volume for unit density
	ComputeVolume() float64
	// ComputeCOM returns the center of mass in the local frame
	ComputeCOM() mgl64.Vec3
	// ComputeMomentOfInertia returns the inertia tensor about the local
	// origin for unit density
	ComputeMomentOfInertia() mgl64.Mat3
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform) AABB
	Support(direction mgl64.Vec3) mgl64.Vec3
	SupportLocal(direction mgl64.Vec3, hint int) (mgl64.Vec3, int)
}

// CollisionObject places a collision geometry in the world. The geometry
// may be shared by several objects; the transform and the cached AABB are
// per-object.
type CollisionObject struct {
	// ID identifies the object in logs and warm-start caches
	ID        uuid.UUID
	Geometry  CollisionGeometry
	Transform Transform

	aabb AABB
}

// NewCollisionObject creates a collision object at the given transform and
// caches its world AABB.
func NewCollisionObject(geometry CollisionGeometry, transform Transform) *CollisionObject {
	o := &CollisionObject{
		ID:        uuid.New(),
		Geometry:  geometry,
		Transform: transform,
	}
	o.aabb = geometry.ComputeAABB(transform)

	return o
}

// SetTransform moves the object and refreshes its cached AABB.
func (o *CollisionObject) SetTransform(transform Transform) {
	o.Transform = transform
	o.aabb = o.Geometry.ComputeAABB(transform)
}

// AABB returns the cached world-space bounding box.
func (o *CollisionObject) AABB() AABB {
	return o.aabb
}

// SupportWorld returns the support point of the object in world space for
// a world-space direction.
func (o *CollisionObject) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	point, _ := o.SupportWorldHint(direction, 0)
	return point
}

// SupportWorldHint is SupportWorld with a warm-start vertex hint, returning
// the index of the supporting vertex so the caller can cache it for the
// next query.
func (o *CollisionObject) SupportWorldHint(direction mgl64.Vec3, hint int) (mgl64.Vec3, int) {
	// Rotate the direction into the local frame, query the shape there,
	// then map the support point back to world space.
	localDirection := o.Transform.InverseRotation.Rotate(direction)
	localSupport, index := o.Geometry.SupportLocal(localDirection, hint)

	return o.Transform.Apply(localSupport), index
}
