package hull

import (
	"sync"
	"time"

	"github.com/akmonengine/hull/shape"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultWorkers = 1

// task runs fn over data chunked across workersCount goroutines.
func task[T any](workersCount int, data []T, fn func(data T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}

// Pair is a pair of collision objects to query, typically produced by a
// broad phase.
type Pair struct {
	A *shape.CollisionObject
	B *shape.CollisionObject
}

// CollisionSolver is the narrow interface the external GJK/EPA solver
// implements. The solver reads the request, accumulates contacts and the
// distance lower bound into the result, and records its cached guesses
// there for warm-starting.
type CollisionSolver interface {
	Collide(a, b *shape.CollisionObject, request *CollisionRequest, result *CollisionResult) error
}

// DistanceSolver computes the minimum distance between two objects,
// narrowing the result through its best-so-far update protocol.
type DistanceSolver interface {
	Distance(a, b *shape.CollisionObject, request *DistanceRequest, result *DistanceResult) (float64, error)
}

// PairResult couples a queried pair with its collision result.
type PairResult struct {
	Pair   Pair
	Result *CollisionResult
	Err    error
}

// DistanceEntry is one distance query in a batch: the pair, its
// per-query request copy and its result accumulator.
type DistanceEntry struct {
	Pair    Pair
	Request DistanceRequest
	Result  DistanceResult
	Err     error
}

// Pipeline fans narrow-phase queries out over worker goroutines. Each
// query owns its request/result pair; the only state shared between
// queries is the warm-start cache, keyed by object pair, which feeds the
// cached guesses of a finished query into the next request for the same
// pair.
type Pipeline struct {
	Solver         CollisionSolver
	DistanceSolver DistanceSolver
	Workers        int

	// Request is the template copied for every collision query
	Request CollisionRequest

	// Cache propagates warm-start guesses across motion-coherent passes
	Cache *GuessCache

	log *zap.Logger
}

// NewPipeline creates a pipeline around a collision solver. A nil logger
// disables logging.
func NewPipeline(solver CollisionSolver, workers int, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		Solver:  solver,
		Workers: max(DefaultWorkers, workers),
		Request: DefaultCollisionRequest(),
		Cache:   NewGuessCache(),
		log:     logger,
	}
}

// CollideAll drains the pair channel through the worker pool and returns
// one result per pair. Warm-start guesses cached by a previous pass are
// applied to each request before solving, and the fresh guesses stored
// back afterwards.
func (p *Pipeline) CollideAll(pairs <-chan Pair) []PairResult {
	workers := max(DefaultWorkers, p.Workers)
	out := make(chan PairResult, workers)
	run := uuid.New()

	go func() {
		var wg sync.WaitGroup
		defer close(out)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for pair := range pairs {
					out <- p.collide(run, pair)
				}
			}()
		}
		wg.Wait()
	}()

	results := make([]PairResult, 0)
	for result := range out {
		results = append(results, result)
	}

	p.log.Debug("collision pass done",
		zap.Stringer("run", run),
		zap.Int("pairs", len(results)))

	return results
}

func (p *Pipeline) collide(run uuid.UUID, pair Pair) PairResult {
	request := p.Request
	p.Cache.Apply(&request.QueryRequest, pair.A, pair.B)

	result := NewCollisionResult()

	var start time.Time
	if request.EnableTimings {
		start = time.Now()
	}

	err := p.Solver.Collide(pair.A, pair.B, &request, &result)

	if request.EnableTimings {
		result.Timings.Wall = time.Since(start).Seconds()
	}

	if err != nil {
		p.log.Warn("collision query failed",
			zap.Stringer("run", run),
			zap.Stringer("o1", pair.A.ID),
			zap.Stringer("o2", pair.B.ID),
			zap.Error(err))
		return PairResult{Pair: pair, Result: &result, Err: err}
	}

	p.Cache.Store(pair.A, pair.B, &result.QueryResult)

	p.log.Debug("collision query",
		zap.Stringer("run", run),
		zap.Stringer("o1", pair.A.ID),
		zap.Stringer("o2", pair.B.ID),
		zap.Int("contacts", result.NumContacts()),
		zap.Float64("distance_lower_bound", result.DistanceLowerBound))

	return PairResult{Pair: pair, Result: &result}
}

// DistanceAll solves a batch of distance queries in parallel chunks. Each
// entry carries its own request and result; warm-start guesses flow
// through the cache exactly as for collision queries.
func (p *Pipeline) DistanceAll(entries []*DistanceEntry) {
	workers := max(DefaultWorkers, p.Workers)

	task(workers, entries, func(entry *DistanceEntry) {
		p.Cache.Apply(&entry.Request.QueryRequest, entry.Pair.A, entry.Pair.B)

		var start time.Time
		if entry.Request.EnableTimings {
			start = time.Now()
		}

		_, entry.Err = p.DistanceSolver.Distance(entry.Pair.A, entry.Pair.B, &entry.Request, &entry.Result)

		if entry.Request.EnableTimings {
			entry.Result.Timings.Wall = time.Since(start).Seconds()
		}

		if entry.Err == nil {
			p.Cache.Store(entry.Pair.A, entry.Pair.B, &entry.Result.QueryResult)
		}
	})
}
