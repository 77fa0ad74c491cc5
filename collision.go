package hull

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNoContacts is returned when a contact is requested from a result that
// holds none. Callers can avoid it by checking NumContacts first.
var ErrNoContacts = errors.New("the number of contacts is zero")

// CollisionRequestFlag selects which results the collision query computes.
type CollisionRequestFlag int

const (
	// ContactFlag requests full contact information (normal, penetration
	// depth, position)
	ContactFlag CollisionRequestFlag = 1 << iota
	// DistanceLowerBoundFlag requests a lower bound on the distance when
	// the objects are disjoint
	DistanceLowerBoundFlag
	// NoRequestFlag disables all computations
	NoRequestFlag CollisionRequestFlag = 1 << 12
)

const defaultBreakDistance = 1e-3

// CollisionRequest configures one collision query.
type CollisionRequest struct {
	QueryRequest

	// NumMaxContacts is the maximum number of contacts the solver should
	// return. It is enforced by the solver, not by the result accumulator.
	NumMaxContacts int

	// EnableContact requests full contact information
	EnableContact bool

	// EnableDistanceLowerBound requests a lower bound on distance when the
	// objects are disjoint
	EnableDistanceLowerBound bool

	// SecurityMargin is the separation below which objects are reported
	// as colliding even without geometric overlap. Set to -Inf, every
	// pair is considered collision free
	SecurityMargin float64

	// BreakDistance is the separation below which bounding volumes are
	// broken down during traversal
	BreakDistance float64

	// DistanceUpperBound is the separation above which the solver may stop
	// early, trading exact witness points for speed
	DistanceUpperBound float64
}

// NewCollisionRequest builds a request from a flag set and a maximum
// contact count.
func NewCollisionRequest(flag CollisionRequestFlag, numMaxContacts int) CollisionRequest {
	return CollisionRequest{
		QueryRequest:             NewQueryRequest(),
		NumMaxContacts:           numMaxContacts,
		EnableContact:            flag&ContactFlag != 0,
		EnableDistanceLowerBound: flag&DistanceLowerBoundFlag != 0,
		BreakDistance:            defaultBreakDistance,
		DistanceUpperBound:       math.Inf(1),
	}
}

// DefaultCollisionRequest returns a request for a single contact without
// contact information.
func DefaultCollisionRequest() CollisionRequest {
	return CollisionRequest{
		QueryRequest:       NewQueryRequest(),
		NumMaxContacts:     1,
		BreakDistance:      defaultBreakDistance,
		DistanceUpperBound: math.Inf(1),
	}
}

// IsSatisfied reports whether the result already carries as many contacts
// as the request asked for.
func (r CollisionRequest) IsSatisfied(result *CollisionResult) bool {
	return result.NumContacts() >= r.NumMaxContacts
}

// Equal reports whether two collision requests are the same.
func (r CollisionRequest) Equal(other CollisionRequest) bool {
	return r.QueryRequest.Equal(other.QueryRequest) &&
		r.NumMaxContacts == other.NumMaxContacts &&
		r.EnableContact == other.EnableContact &&
		r.EnableDistanceLowerBound == other.EnableDistanceLowerBound &&
		r.SecurityMargin == other.SecurityMargin &&
		r.BreakDistance == other.BreakDistance &&
		r.DistanceUpperBound == other.DistanceUpperBound
}

// CollisionResult accumulates the contacts of one collision query.
type CollisionResult struct {
	QueryResult

	contacts []Contact

	// DistanceLowerBound is a lower bound on the distance between the
	// objects when they are disjoint. It only tightens: with
	// DistanceUpperBound left at +Inf it converges to the actual distance
	DistanceLowerBound float64

	// NearestPoints are the witness points achieving the lower bound,
	// available once the bound drops under the request's BreakDistance
	NearestPoints [2]mgl64.Vec3
}

// NewCollisionResult returns an empty result with the lower bound at +Inf.
func NewCollisionResult() CollisionResult {
	return CollisionResult{
		QueryResult:        NewQueryResult(),
		DistanceLowerBound: math.Inf(1),
	}
}

// UpdateDistanceLowerBound tightens the lower bound: the candidate only
// replaces the stored bound when it is smaller.
func (r *CollisionResult) UpdateDistanceLowerBound(distanceLowerBound float64) {
	if distanceLowerBound < r.DistanceLowerBound {
		r.DistanceLowerBound = distanceLowerBound
	}
}

// AddContact appends one contact. The request's NumMaxContacts cap is the
// solver's responsibility, not enforced here.
func (r *CollisionResult) AddContact(c Contact) {
	r.contacts = append(r.contacts, c)
}

// IsCollision reports whether any contact was found.
func (r *CollisionResult) IsCollision() bool {
	return len(r.contacts) > 0
}

// NumContacts returns the number of contacts found.
func (r *CollisionResult) NumContacts() int {
	return len(r.contacts)
}

// GetContact returns the i-th contact. With no contacts at all it fails
// with ErrNoContacts; an index beyond the last of one or more contacts
// returns the last contact instead of failing.
func (r *CollisionResult) GetContact(i int) (Contact, error) {
	if len(r.contacts) == 0 {
		return Contact{}, fmt.Errorf("%w: no contact can be returned", ErrNoContacts)
	}

	if i < 0 {
		i = 0
	}
	if i >= len(r.contacts) {
		i = len(r.contacts) - 1
	}

	return r.contacts[i], nil
}

// SetContact replaces the i-th contact, with the same clamping behaviour
// as GetContact.
func (r *CollisionResult) SetContact(i int, c Contact) error {
	if len(r.contacts) == 0 {
		return fmt.Errorf("%w: no contact can be replaced", ErrNoContacts)
	}

	if i < 0 {
		i = 0
	}
	if i >= len(r.contacts) {
		i = len(r.contacts) - 1
	}
	r.contacts[i] = c

	return nil
}

// Contacts returns all contacts found. The returned slice aliases the
// accumulator and must not be mutated.
func (r *CollisionResult) Contacts() []Contact {
	return r.contacts
}

// Clear resets the accumulators to their construction-time defaults: no
// contacts, lower bound back at +Inf, timings zeroed.
func (r *CollisionResult) Clear() {
	r.contacts = r.contacts[:0]
	r.DistanceLowerBound = math.Inf(1)
	r.Timings.Clear()
}

// SwapObjects repositions every contact after the solver inverted the
// object pair: geometries, primitive ids and witness points are swapped
// and normals flipped so they keep pointing from the first object to the
// second.
func (r *CollisionResult) SwapObjects() {
	for i := range r.contacts {
		c := &r.contacts[i]
		c.O1, c.O2 = c.O2, c.O1
		c.B1, c.B2 = c.B2, c.B1
		c.NearestPoints[0], c.NearestPoints[1] = c.NearestPoints[1], c.NearestPoints[0]
		c.Normal = c.Normal.Mul(-1)
	}
	r.NearestPoints[0], r.NearestPoints[1] = r.NearestPoints[1], r.NearestPoints[0]
}

// Equal reports whether two results carry the same contacts and lower
// bound.
func (r *CollisionResult) Equal(other *CollisionResult) bool {
	if r.DistanceLowerBound != other.DistanceLowerBound {
		return false
	}
	if len(r.contacts) != len(other.contacts) {
		return false
	}
	for i := range r.contacts {
		if !r.contacts[i].Equal(other.contacts[i]) {
			return false
		}
	}
	return true
}

// UpdateDistanceLowerBoundFromBV feeds a squared distance bound found
// during bounding-volume traversal into the result. Bounding volumes
// cannot prove negative distances, so a bound already at or below zero is
// left alone.
func UpdateDistanceLowerBoundFromBV(_ *CollisionRequest, res *CollisionResult, sqrDistLowerBound float64) {
	if res.DistanceLowerBound <= 0 {
		return
	}
	if newBound := math.Sqrt(sqrDistLowerBound); newBound < res.DistanceLowerBound {
		res.DistanceLowerBound = newBound
	}
}

// UpdateDistanceLowerBoundFromLeaf feeds an exact leaf distance and its
// witness points into the result.
func UpdateDistanceLowerBoundFromLeaf(_ *CollisionRequest, res *CollisionResult, distance float64, p0, p1 mgl64.Vec3) {
	if distance < res.DistanceLowerBound {
		res.DistanceLowerBound = distance
		res.NearestPoints[0] = p0
		res.NearestPoints[1] = p1
	}
}
