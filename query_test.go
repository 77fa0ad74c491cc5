package hull

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNewQueryRequest_Defaults(t *testing.T) {
	request := NewQueryRequest()

	assert.Equal(t, DefaultGuess, request.InitialGuess)
	assert.Equal(t, DefaultGJK, request.GJKVariant)
	assert.Equal(t, VDB, request.ConvergenceCriterion)
	assert.Equal(t, Relative, request.ConvergenceCriterionType)
	assert.Equal(t, 1e-6, request.GJKTolerance)
	assert.Equal(t, 128, request.GJKMaxIterations)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, request.CachedGuess)
	assert.Equal(t, SupportHint{0, 0}, request.CachedSupportHint)
	assert.False(t, request.EnableTimings)
}

func TestNewQueryResult_Defaults(t *testing.T) {
	result := NewQueryResult()

	assert.Equal(t, mgl64.Vec3{0, 0, 0}, result.CachedGuess)
	assert.Equal(t, SupportHint{-1, -1}, result.CachedSupportHint)
	assert.Zero(t, result.Timings)
}

func TestUpdateGuess_CachedMode(t *testing.T) {
	request := NewQueryRequest()
	request.InitialGuess = CachedGuess

	result := NewQueryResult()
	result.CachedGuess = mgl64.Vec3{0, 1, 0}
	result.CachedSupportHint = SupportHint{3, 7}

	request.UpdateGuess(&result)

	assert.Equal(t, mgl64.Vec3{0, 1, 0}, request.CachedGuess)
	assert.Equal(t, SupportHint{3, 7}, request.CachedSupportHint)
}

func TestUpdateGuess_DefaultModeIgnoresResult(t *testing.T) {
	request := NewQueryRequest()

	result := NewQueryResult()
	result.CachedGuess = mgl64.Vec3{0, 1, 0}
	result.CachedSupportHint = SupportHint{3, 7}

	request.UpdateGuess(&result)

	// The fixed default guess stays in place
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, request.CachedGuess)
	assert.Equal(t, SupportHint{0, 0}, request.CachedSupportHint)
}

func TestQueryRequest_Equal(t *testing.T) {
	a := NewQueryRequest()
	b := NewQueryRequest()
	assert.True(t, a.Equal(b))

	b.CachedGuess = mgl64.Vec3{0, 0, 1}
	assert.False(t, a.Equal(b))

	// Tolerances do not participate in warm-start equality
	c := NewQueryRequest()
	c.GJKTolerance = 1e-3
	assert.True(t, a.Equal(c))
}

func TestCollisionRequest_Flags(t *testing.T) {
	request := NewCollisionRequest(ContactFlag|DistanceLowerBoundFlag, 8)

	assert.Equal(t, 8, request.NumMaxContacts)
	assert.True(t, request.EnableContact)
	assert.True(t, request.EnableDistanceLowerBound)
	assert.Equal(t, 0.0, request.SecurityMargin)
	assert.Equal(t, 1e-3, request.BreakDistance)
	assert.True(t, math.IsInf(request.DistanceUpperBound, 1))

	noContact := NewCollisionRequest(DistanceLowerBoundFlag, 1)
	assert.False(t, noContact.EnableContact)
	assert.True(t, noContact.EnableDistanceLowerBound)
}

func TestCPUTimes_Clear(t *testing.T) {
	timings := CPUTimes{Wall: 1.5, User: 0.5, System: 0.1}
	timings.Clear()
	assert.Zero(t, timings)
}
