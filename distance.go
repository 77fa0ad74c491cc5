package hull

import (
	"math"

	"github.com/akmonengine/hull/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// DerivativeOptions configures derivative estimation of the separation
// vector with respect to the relative configuration of the shapes.
type DerivativeOptions struct {
	// Noise applied by the derivation method
	Noise float64

	// NumSamples used by zero and first order methods
	NumSamples int

	// WarmStart seeds the solver in the zero-order method
	WarmStart mgl64.Vec3

	// Hint warm-starts the support lookups in the first-order method
	Hint SupportHint
}

// NewDerivativeOptions returns the default derivation configuration.
func NewDerivativeOptions() DerivativeOptions {
	return DerivativeOptions{
		Noise:     1e-3,
		WarmStart: mgl64.Vec3{1, 0, 0},
	}
}

// DistanceRequest configures one minimum-distance query.
type DistanceRequest struct {
	QueryRequest

	// EnableNearestPoints requests the witness points achieving the
	// minimum distance
	EnableNearestPoints bool

	// DerivativeOptions configure derivative estimation when the solver
	// supports it
	DerivativeOptions DerivativeOptions

	// RelErr and AbsErr are the error thresholds for approximate
	// distance; RelErr is relative, between 0 and 1
	RelErr float64
	AbsErr float64
}

// NewDistanceRequest returns a request with exact distance computation and
// the default solver tolerances.
func NewDistanceRequest(enableNearestPoints bool) DistanceRequest {
	return DistanceRequest{
		QueryRequest:        NewQueryRequest(),
		EnableNearestPoints: enableNearestPoints,
		DerivativeOptions:   NewDerivativeOptions(),
	}
}

// IsSatisfied reports whether the result reached the requested accuracy.
// With zero thresholds any finite distance satisfies the request.
func (r DistanceRequest) IsSatisfied(result *DistanceResult) bool {
	return !math.IsInf(result.MinDistance, 1)
}

// Equal reports whether two distance requests are the same.
func (r DistanceRequest) Equal(other DistanceRequest) bool {
	return r.QueryRequest.Equal(other.QueryRequest) &&
		r.EnableNearestPoints == other.EnableNearestPoints &&
		r.RelErr == other.RelErr && r.AbsErr == other.AbsErr
}

// DistanceResult accumulates the best distance candidate of one query
// under a single-winner protocol: each update replaces every field at
// once, and only when it strictly improves the minimum distance.
type DistanceResult struct {
	QueryResult

	// MinDistance is the minimum distance between the two objects,
	// non-positive when they collide
	MinDistance float64

	// NearestPoints are the witness points, the first on O1 and the
	// second on O2
	NearestPoints [2]mgl64.Vec3

	// Normal is the normalized separation vector (p2-p1)/dist(o1,o2),
	// pointing from O1 to O2
	Normal mgl64.Vec3

	// O1, O2 are the geometries the winning candidate belongs to
	O1 shape.CollisionGeometry
	O2 shape.CollisionGeometry

	// B1, B2 identify the nearest primitive inside each geometry, None
	// for plain shapes
	B1 int
	B2 int
}

// NewDistanceResult returns the construction-time defaults: distance at
// +Inf, NaN witness points and normal, invalid primitive ids. The NaN
// defaults deliberately propagate into any computation that reads a result
// before the solver produced a candidate.
func NewDistanceResult() DistanceResult {
	nan := math.NaN()
	nanVec := mgl64.Vec3{nan, nan, nan}

	return DistanceResult{
		QueryResult:   NewQueryResult(),
		MinDistance:   math.Inf(1),
		NearestPoints: [2]mgl64.Vec3{nanVec, nanVec},
		Normal:        nanVec,
		B1:            None,
		B2:            None,
	}
}

// Update records a distance candidate without geometric information. The
// candidate wins only when its distance is strictly smaller than the
// current minimum, in which case the object identities and primitive ids
// are replaced together.
func (r *DistanceResult) Update(distance float64, o1, o2 shape.CollisionGeometry, b1, b2 int) {
	if r.MinDistance > distance {
		r.MinDistance = distance
		r.O1 = o1
		r.O2 = o2
		r.B1 = b1
		r.B2 = b2
	}
}

// UpdateWithPoints records a full distance candidate: on a win the witness
// points and normal are replaced along with the identity fields, so every
// geometric field always belongs to the same winning candidate.
func (r *DistanceResult) UpdateWithPoints(distance float64, o1, o2 shape.CollisionGeometry, b1, b2 int, p1, p2, normal mgl64.Vec3) {
	if r.MinDistance > distance {
		r.MinDistance = distance
		r.O1 = o1
		r.O2 = o2
		r.B1 = b1
		r.B2 = b2
		r.NearestPoints[0] = p1
		r.NearestPoints[1] = p2
		r.Normal = normal
	}
}

// Merge folds another result in, keeping whichever candidate has the
// smaller minimum distance.
func (r *DistanceResult) Merge(other *DistanceResult) {
	if r.MinDistance > other.MinDistance {
		r.MinDistance = other.MinDistance
		r.O1 = other.O1
		r.O2 = other.O2
		r.B1 = other.B1
		r.B2 = other.B2
		r.NearestPoints = other.NearestPoints
		r.Normal = other.Normal
	}
}

// Clear resets the accumulator to its construction-time defaults.
func (r *DistanceResult) Clear() {
	nan := math.NaN()
	nanVec := mgl64.Vec3{nan, nan, nan}

	r.MinDistance = math.Inf(1)
	r.O1 = nil
	r.O2 = nil
	r.B1 = None
	r.B2 = None
	r.NearestPoints = [2]mgl64.Vec3{nanVec, nanVec}
	r.Normal = nanVec
	r.Timings.Clear()
}

// Equal reports whether two results carry the same winning candidate.
// Exact float comparison: NaN defaults compare unequal, so two untouched
// results are only equal through their identical infinities and ids.
func (r *DistanceResult) Equal(other *DistanceResult) bool {
	return r.MinDistance == other.MinDistance &&
		r.NearestPoints[0] == other.NearestPoints[0] &&
		r.NearestPoints[1] == other.NearestPoints[1] &&
		r.Normal == other.Normal &&
		r.O1 == other.O1 && r.O2 == other.O2 &&
		r.B1 == other.B1 && r.B2 == other.B2
}
