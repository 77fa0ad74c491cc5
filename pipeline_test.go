package hull

import (
	"errors"
	"sync"
	"testing"

	"github.com/akmonengine/hull/mesh"
	"github.com/akmonengine/hull/shape"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisGapSolver is a test double deciding collision from the cached AABBs
// along the x axis. It records the warm-start guess of every request it
// receives and caches the center-to-center direction as its next guess.
type axisGapSolver struct {
	mu        sync.Mutex
	seenGuess []mgl64.Vec3
	failOnGap bool
}

func (s *axisGapSolver) Collide(a, b *shape.CollisionObject, request *CollisionRequest, result *CollisionResult) error {
	s.mu.Lock()
	s.seenGuess = append(s.seenGuess, request.CachedGuess)
	s.mu.Unlock()

	gap := b.AABB().Min.X() - a.AABB().Max.X()
	if gap > 0 {
		if s.failOnGap {
			return errors.New("separated pair rejected")
		}
		result.UpdateDistanceLowerBound(gap)
	} else {
		mid := a.Transform.Position.Add(b.Transform.Position).Mul(0.5)
		result.AddContact(NewContactAt(a.Geometry, b.Geometry, None, None,
			mid, mgl64.Vec3{1, 0, 0}, -gap))
	}

	result.CachedGuess = b.Transform.Position.Sub(a.Transform.Position)
	result.CachedSupportHint = SupportHint{1, 2}

	return nil
}

func (s *axisGapSolver) Distance(a, b *shape.CollisionObject, request *DistanceRequest, result *DistanceResult) (float64, error) {
	s.mu.Lock()
	s.seenGuess = append(s.seenGuess, request.CachedGuess)
	s.mu.Unlock()

	gap := b.AABB().Min.X() - a.AABB().Max.X()
	result.Update(gap, a.Geometry, b.Geometry, None, None)

	result.CachedGuess = b.Transform.Position.Sub(a.Transform.Position)

	return gap, nil
}

func boxObjectAt(x float64) *shape.CollisionObject {
	box := mesh.Box(mgl64.Vec3{0.5, 0.5, 0.5})
	return shape.NewCollisionObject(box, shape.NewTransformAt(mgl64.Vec3{x, 0, 0}, mgl64.QuatIdent()))
}

func pairChannel(pairs ...Pair) <-chan Pair {
	ch := make(chan Pair, len(pairs))
	for _, pair := range pairs {
		ch <- pair
	}
	close(ch)

	return ch
}

func TestPipeline_CollideAll(t *testing.T) {
	solver := &axisGapSolver{}
	pipeline := NewPipeline(solver, 4, nil)

	touching := Pair{A: boxObjectAt(0), B: boxObjectAt(0.5)}
	separated := Pair{A: boxObjectAt(0), B: boxObjectAt(3)}

	results := pipeline.CollideAll(pairChannel(touching, separated))
	require.Len(t, results, 2)

	byB := map[*shape.CollisionObject]PairResult{}
	for _, result := range results {
		byB[result.Pair.B] = result
	}

	hit := byB[touching.B]
	require.NoError(t, hit.Err)
	assert.True(t, hit.Result.IsCollision())
	assert.Equal(t, 1, hit.Result.NumContacts())

	miss := byB[separated.B]
	require.NoError(t, miss.Err)
	assert.False(t, miss.Result.IsCollision())
	assert.Equal(t, 2.0, miss.Result.DistanceLowerBound)
}

func TestPipeline_WarmStartPropagation(t *testing.T) {
	solver := &axisGapSolver{}
	pipeline := NewPipeline(solver, 1, nil)
	pipeline.Request.InitialGuess = CachedGuess

	pair := Pair{A: boxObjectAt(0), B: boxObjectAt(3)}

	pipeline.CollideAll(pairChannel(pair))
	require.Len(t, solver.seenGuess, 1)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, solver.seenGuess[0])

	// The second pass starts from the direction cached by the first
	pipeline.CollideAll(pairChannel(pair))
	require.Len(t, solver.seenGuess, 2)
	assert.Equal(t, mgl64.Vec3{3, 0, 0}, solver.seenGuess[1])
}

func TestPipeline_DefaultGuessIgnoresCache(t *testing.T) {
	solver := &axisGapSolver{}
	pipeline := NewPipeline(solver, 1, nil)

	pair := Pair{A: boxObjectAt(0), B: boxObjectAt(3)}

	pipeline.CollideAll(pairChannel(pair))
	pipeline.CollideAll(pairChannel(pair))

	require.Len(t, solver.seenGuess, 2)
	assert.Equal(t, solver.seenGuess[0], solver.seenGuess[1])
}

func TestPipeline_SolverErrorSkipsCache(t *testing.T) {
	solver := &axisGapSolver{failOnGap: true}
	pipeline := NewPipeline(solver, 1, nil)
	pipeline.Request.InitialGuess = CachedGuess

	pair := Pair{A: boxObjectAt(0), B: boxObjectAt(3)}

	results := pipeline.CollideAll(pairChannel(pair))
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)

	// Nothing was cached, so the second pass still sees the default guess
	solver.failOnGap = false
	pipeline.CollideAll(pairChannel(pair))
	require.Len(t, solver.seenGuess, 2)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, solver.seenGuess[1])
}

func TestPipeline_Timings(t *testing.T) {
	solver := &axisGapSolver{}
	pipeline := NewPipeline(solver, 1, nil)
	pipeline.Request.EnableTimings = true

	pair := Pair{A: boxObjectAt(0), B: boxObjectAt(3)}

	results := pipeline.CollideAll(pairChannel(pair))
	require.Len(t, results, 1)
	assert.Greater(t, results[0].Result.Timings.Wall, 0.0)
}

func TestPipeline_DistanceAll(t *testing.T) {
	solver := &axisGapSolver{}
	pipeline := NewPipeline(solver, 2, nil)
	pipeline.DistanceSolver = solver

	entries := []*DistanceEntry{
		{Pair: Pair{A: boxObjectAt(0), B: boxObjectAt(3)}, Request: NewDistanceRequest(false), Result: NewDistanceResult()},
		{Pair: Pair{A: boxObjectAt(0), B: boxObjectAt(5)}, Request: NewDistanceRequest(false), Result: NewDistanceResult()},
	}

	pipeline.DistanceAll(entries)

	require.NoError(t, entries[0].Err)
	assert.Equal(t, 2.0, entries[0].Result.MinDistance)
	require.NoError(t, entries[1].Err)
	assert.Equal(t, 4.0, entries[1].Result.MinDistance)
}

func TestGuessCache_KeyNormalization(t *testing.T) {
	a := boxObjectAt(0)
	b := boxObjectAt(1)

	assert.Equal(t, makePairKey(a, b), makePairKey(b, a))
	assert.NotEqual(t, makePairKey(a, b), makePairKey(a, a))
}

func TestGuessCache_ApplyStoreForget(t *testing.T) {
	cache := NewGuessCache()
	a := boxObjectAt(0)
	b := boxObjectAt(1)

	stored := NewQueryResult()
	stored.CachedGuess = mgl64.Vec3{0, 1, 0}
	stored.CachedSupportHint = SupportHint{4, 7}
	cache.Store(a, b, &stored)

	request := NewQueryRequest()
	request.InitialGuess = CachedGuess
	cache.Apply(&request, b, a)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, request.CachedGuess)
	assert.Equal(t, SupportHint{4, 7}, request.CachedSupportHint)

	cache.Forget(a)
	request = NewQueryRequest()
	request.InitialGuess = CachedGuess
	cache.Apply(&request, a, b)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, request.CachedGuess)
}
