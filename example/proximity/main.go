package main

import (
	"fmt"

	"github.com/akmonengine/hull"
	"github.com/akmonengine/hull/mesh"
	"github.com/akmonengine/hull/shape"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// aabbSolver is a stand-in narrow-phase solver deciding proximity from the
// cached bounding boxes. A real integration plugs a GJK/EPA implementation
// behind the same interface.
type aabbSolver struct{}

func (aabbSolver) Collide(a, b *shape.CollisionObject, request *hull.CollisionRequest, result *hull.CollisionResult) error {
	boxA, boxB := a.AABB(), b.AABB()

	if boxA.Overlaps(boxB) {
		mid := a.Transform.Position.Add(b.Transform.Position).Mul(0.5)
		normal := b.Transform.Position.Sub(a.Transform.Position)
		if normal.Len() > 0 {
			normal = normal.Normalize()
		}
		result.AddContact(hull.NewContactAt(a.Geometry, b.Geometry, hull.None, hull.None, mid, normal, 0))
	} else {
		gap2 := 0.0
		for axis := 0; axis < 3; axis++ {
			if d := boxB.Min[axis] - boxA.Max[axis]; d > 0 {
				gap2 += d * d
			}
			if d := boxA.Min[axis] - boxB.Max[axis]; d > 0 {
				gap2 += d * d
			}
		}
		hull.UpdateDistanceLowerBoundFromBV(request, result, gap2)
	}

	result.CachedGuess = b.Transform.Position.Sub(a.Transform.Position)

	return nil
}

func describeMass(name string, geometry shape.CollisionGeometry) {
	fmt.Printf("%s:\n", name)
	fmt.Printf("  volume: %.6f\n", geometry.ComputeVolume())
	fmt.Printf("  center of mass: %v\n", geometry.ComputeCOM())
	fmt.Printf("  inertia (unit density): %v\n", geometry.ComputeMomentOfInertia())
	fmt.Println()
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cube := mesh.Box(mgl64.Vec3{0.5, 0.5, 0.5})
	tetra := mesh.Tetrahedron(1)
	octa := mesh.Octahedron(1)

	fmt.Println("Mass properties")
	fmt.Println("===============")
	describeMass("unit cube", cube)
	describeMass("tetrahedron", tetra)
	describeMass("octahedron", octa)

	ground := shape.NewCollisionObject(mesh.Box(mgl64.Vec3{10, 0.5, 10}), shape.NewTransform())
	falling := shape.NewCollisionObject(cube, shape.NewTransformAt(
		mgl64.Vec3{0, 5, 0},
		mgl64.QuatRotate(0.7, mgl64.Vec3{0, 0, 1}),
	))
	bystander := shape.NewCollisionObject(octa, shape.NewTransformAt(mgl64.Vec3{8, 3, 0}, mgl64.QuatIdent()))

	pipeline := hull.NewPipeline(aabbSolver{}, 4, logger)
	pipeline.Request.InitialGuess = hull.CachedGuess
	pipeline.Request.EnableTimings = true

	fmt.Println("Dropping the cube onto the ground")
	fmt.Println("=================================")

	const dt = 0.25
	for step := 0; step < 24; step++ {
		pairs := make(chan hull.Pair, 2)
		pairs <- hull.Pair{A: ground, B: falling}
		pairs <- hull.Pair{A: ground, B: bystander}
		close(pairs)

		results := pipeline.CollideAll(pairs)

		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("step %d: query failed: %v\n", step, r.Err)
				continue
			}
			if r.Result.IsCollision() {
				contact, _ := r.Result.GetContact(0)
				fmt.Printf("step %d: contact at %v, normal %v (%.1fus)\n",
					step, contact.Pos, contact.Normal, r.Result.Timings.Wall*1e6)
			} else {
				fmt.Printf("step %d: separated, lower bound %.3f (%.1fus)\n",
					step, r.Result.DistanceLowerBound, r.Result.Timings.Wall*1e6)
			}
		}

		if falling.Transform.Position.Y() > 1 {
			position := falling.Transform.Position.Sub(mgl64.Vec3{0, dt, 0})
			falling.SetTransform(shape.NewTransformAt(position, falling.Transform.Rotation))
		}
	}

	fmt.Println()
	fmt.Println("Batch distance queries")
	fmt.Println("======================")

	pipeline.DistanceSolver = axisDistance{}
	entries := []*hull.DistanceEntry{
		{Pair: hull.Pair{A: ground, B: falling}, Request: hull.NewDistanceRequest(true), Result: hull.NewDistanceResult()},
		{Pair: hull.Pair{A: ground, B: bystander}, Request: hull.NewDistanceRequest(true), Result: hull.NewDistanceResult()},
	}
	pipeline.DistanceAll(entries)

	for _, entry := range entries {
		fmt.Printf("distance %.3f between %v and %v\n",
			entry.Result.MinDistance,
			entry.Pair.A.Transform.Position,
			entry.Pair.B.Transform.Position)
	}
}

// axisDistance measures the vertical gap between the cached bounding boxes.
type axisDistance struct{}

func (axisDistance) Distance(a, b *shape.CollisionObject, request *hull.DistanceRequest, result *hull.DistanceResult) (float64, error) {
	gap := b.AABB().Min.Y() - a.AABB().Max.Y()
	p1 := mgl64.Vec3{b.Transform.Position.X(), a.AABB().Max.Y(), b.Transform.Position.Z()}
	p2 := mgl64.Vec3{b.Transform.Position.X(), b.AABB().Min.Y(), b.Transform.Position.Z()}
	result.UpdateWithPoints(gap, a.Geometry, b.Geometry, hull.None, hull.None, p1, p2, mgl64.Vec3{0, 1, 0})

	return gap, nil
}
