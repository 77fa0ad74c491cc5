// Package hull implements the request/result protocol for narrow-phase
// proximity queries between convex collision shapes.
//
// A query pairs an immutable request (solver tolerances, warm-start caching
// mode, query thresholds) with a mutable result accumulator. The iterative
// solver (GJK, with EPA for penetration) is an external collaborator: it
// reads the request, narrows the result through the
// accumulation operations (AddContact, UpdateDistanceLowerBound,
// DistanceResult.Update), and leaves its last search direction and support
// indices in the result. Feeding those back into the next request via
// UpdateGuess warm-starts the solver when geometry only moved slightly
// between calls.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance
//     Between Complex Objects in Three-Dimensional Space" (1988)
//   - Montaut et al.: "Collision Detection Accelerated: An Optimization
//     Perspective" (2022)
package hull

import (
	"github.com/go-gl/mathgl/mgl64"
)

// InitialGuess selects how the solver seeds its first search direction.
type InitialGuess int

const (
	// DefaultGuess starts the solver from a fixed direction
	DefaultGuess InitialGuess = iota
	// CachedGuess starts from the direction cached by the previous query
	CachedGuess
	// BoundingVolumeGuess starts from the vector between the bounding
	// volume centers
	BoundingVolumeGuess
)

// GJKVariant selects the acceleration scheme of the solver iteration.
type GJKVariant int

const (
	DefaultGJK GJKVariant = iota
	NesterovAcceleration
	PolyakAcceleration
)

// ConvergenceCriterion selects the stopping test of the solver.
type ConvergenceCriterion int

const (
	// VDB is Van den Bergen's relative improvement test
	VDB ConvergenceCriterion = iota
	DualityGap
	Hybrid
)

// ConvergenceCriterionType selects whether the stopping test compares
// against a relative or an absolute tolerance.
type ConvergenceCriterionType int

const (
	Relative ConvergenceCriterionType = iota
	Absolute
)

// SupportHint carries the last supporting vertex index of each shape, used
// to warm-start the hill-climbing support lookup of the next query.
type SupportHint [2]int32

const (
	defaultGJKTolerance     = 1e-6
	defaultGJKMaxIterations = 128

	// defaultCollisionDistanceThreshold is the numerical precision below
	// which a separation is treated as a collision.
	defaultCollisionDistanceThreshold = 1e-12
)

// QueryRequest is the configuration shared by collision and distance
// queries. It is built by the caller before a query and read-only while
// the solver runs.
type QueryRequest struct {
	// InitialGuess selects the warm-start mode for the next solve
	InitialGuess InitialGuess

	// GJKVariant selects the acceleration of the solver iteration
	GJKVariant GJKVariant

	// ConvergenceCriterion and ConvergenceCriterionType define the
	// stopping test of the solver
	ConvergenceCriterion     ConvergenceCriterion
	ConvergenceCriterionType ConvergenceCriterionType

	// GJKTolerance is the convergence tolerance of the solver
	GJKTolerance float64

	// GJKMaxIterations caps the solver iteration count
	GJKMaxIterations int

	// CachedGuess is the initial search direction when InitialGuess is
	// CachedGuess
	CachedGuess mgl64.Vec3

	// CachedSupportHint seeds the support lookups of both shapes
	CachedSupportHint SupportHint

	// EnableTimings records wall-clock timings in the result
	EnableTimings bool

	// CollisionDistanceThreshold is the separation below which shapes are
	// reported as colliding
	CollisionDistanceThreshold float64
}

// NewQueryRequest returns a request with the default tolerances and a
// fixed {1,0,0} initial direction.
func NewQueryRequest() QueryRequest {
	return QueryRequest{
		InitialGuess:               DefaultGuess,
		GJKVariant:                 DefaultGJK,
		ConvergenceCriterion:       VDB,
		ConvergenceCriterionType:   Relative,
		GJKTolerance:               defaultGJKTolerance,
		GJKMaxIterations:           defaultGJKMaxIterations,
		CachedGuess:                mgl64.Vec3{1, 0, 0},
		CachedSupportHint:          SupportHint{0, 0},
		CollisionDistanceThreshold: defaultCollisionDistanceThreshold,
	}
}

// UpdateGuess copies the cached search direction and support indices of a
// finished query into the request, so the next solve starts near the
// previous solution. It only applies when the request selected cached
// warm-starting.
func (r *QueryRequest) UpdateGuess(result *QueryResult) {
	if r.InitialGuess == CachedGuess {
		r.CachedGuess = result.CachedGuess
		r.CachedSupportHint = result.CachedSupportHint
	}
}

// Equal reports whether two requests share the same warm-start
// configuration.
func (r QueryRequest) Equal(other QueryRequest) bool {
	return r.InitialGuess == other.InitialGuess &&
		r.CachedGuess == other.CachedGuess &&
		r.CachedSupportHint == other.CachedSupportHint &&
		r.EnableTimings == other.EnableTimings
}

// QueryResult is the accumulator shared by collision and distance results.
// The solver stores its last search direction and support indices here;
// the caller feeds them into the next request with
// QueryRequest.UpdateGuess.
type QueryResult struct {
	// CachedGuess is the last solver search direction
	CachedGuess mgl64.Vec3

	// CachedSupportHint is the last supporting vertex index of each shape
	CachedSupportHint SupportHint

	// Timings of the query, filled when the request enabled them
	Timings CPUTimes
}

// NewQueryResult returns the construction-time defaults: a zero direction
// and invalid (-1) support indices.
func NewQueryResult() QueryResult {
	return QueryResult{
		CachedSupportHint: SupportHint{-1, -1},
	}
}
