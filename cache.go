package hull

import (
	"bytes"
	"sync"

	"github.com/akmonengine/hull/shape"
	"github.com/google/uuid"
)

type pairKey struct {
	a uuid.UUID
	b uuid.UUID
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(a, b *shape.CollisionObject) pairKey {
	if bytes.Compare(b.ID[:], a.ID[:]) < 0 {
		a, b = b, a
	}

	return pairKey{a: a.ID, b: b.ID}
}

// GuessCache keeps the cached warm-start guesses of finished queries,
// keyed by object pair. It carries solver state between the passes of a
// motion-coherent sequence, so a query against slightly moved geometry
// starts its iterative solver near the previous solution.
//
// The cache is safe for concurrent use by the pipeline workers.
type GuessCache struct {
	mu      sync.RWMutex
	guesses map[pairKey]QueryResult
}

func NewGuessCache() *GuessCache {
	return &GuessCache{
		guesses: make(map[pairKey]QueryResult),
	}
}

// Apply feeds the cached guesses of a previous query on this pair into
// the request. Nothing happens when the pair was never solved or the
// request did not select cached warm-starting.
func (c *GuessCache) Apply(request *QueryRequest, a, b *shape.CollisionObject) {
	c.mu.RLock()
	cached, ok := c.guesses[makePairKey(a, b)]
	c.mu.RUnlock()

	if ok {
		request.UpdateGuess(&cached)
	}
}

// Store records the cached guesses of a finished query for the pair.
func (c *GuessCache) Store(a, b *shape.CollisionObject, result *QueryResult) {
	c.mu.Lock()
	c.guesses[makePairKey(a, b)] = *result
	c.mu.Unlock()
}

// Forget drops every cached entry involving the object, to be called when
// an object leaves the scene.
func (c *GuessCache) Forget(o *shape.CollisionObject) {
	c.mu.Lock()
	for key := range c.guesses {
		if key.a == o.ID || key.b == o.ID {
			delete(c.guesses, key)
		}
	}
	c.mu.Unlock()
}

// Clear drops all cached guesses.
func (c *GuessCache) Clear() {
	c.mu.Lock()
	c.guesses = make(map[pairKey]QueryResult)
	c.mu.Unlock()
}
