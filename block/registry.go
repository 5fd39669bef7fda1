package block

import (
	"errors"
	"sync"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/internal/collision"
	"github.com/arloliu/anvil/internal/hash"
)

// Registry maps block states to ids and back.
//
// Implementations must be safe for concurrent use and must assign AirID to Air.
type Registry interface {
	// ID returns the id of the state, assigning a new one if needed.
	ID(state BlockState) StateID
	// State returns the state with the given id.
	State(id StateID) (BlockState, bool)
}

// InternRegistry assigns ids in order of first use. Lookups are keyed by the
// xxHash64 of the canonical state key; keys whose hash collides with an earlier
// key fall back to a string-keyed map.
type InternRegistry struct {
	mu       sync.RWMutex
	hashKey  func(string) uint64
	tracker  *collision.Tracker
	byHash   map[uint64]StateID
	fallback map[string]StateID
	states   []BlockState
}

var _ Registry = (*InternRegistry)(nil)

// NewInternRegistry creates a registry holding only Air.
func NewInternRegistry() *InternRegistry {
	return newInternRegistry(hash.ID)
}

func newInternRegistry(hashKey func(string) uint64) *InternRegistry {
	r := &InternRegistry{
		hashKey:  hashKey,
		tracker:  collision.NewTracker(),
		byHash:   make(map[uint64]StateID),
		fallback: make(map[string]StateID),
	}
	r.intern(Air.Key(), hashKey(Air.Key()), Air)

	return r
}

// ID returns the id of state, interning it on first use.
func (r *InternRegistry) ID(state BlockState) StateID {
	key := state.Key()
	h := r.hashKey(key)

	r.mu.RLock()
	id, ok := r.lookup(key, h)
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.lookup(key, h); ok {
		return id
	}

	return r.intern(key, h, state)
}

// State returns a copy of the state with the given id.
func (r *InternRegistry) State(id StateID) (BlockState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(id) >= len(r.states) {
		return BlockState{}, false
	}

	return r.states[id].Clone(), true
}

// Len returns the number of interned states.
func (r *InternRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.states)
}

// HasCollision reports whether two interned keys ever shared a hash.
func (r *InternRegistry) HasCollision() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tracker.HasCollision()
}

func (r *InternRegistry) lookup(key string, h uint64) (StateID, bool) {
	if owner, ok := r.tracker.Owner(h); ok && owner == key {
		return r.byHash[h], true
	}
	id, ok := r.fallback[key]

	return id, ok
}

// intern must be called with the write lock held and key not yet interned.
func (r *InternRegistry) intern(key string, h uint64, state BlockState) StateID {
	id := StateID(len(r.states))
	r.states = append(r.states, state.Clone())

	err := r.tracker.Track(key, h)
	switch {
	case err == nil:
		r.byHash[h] = id
	case errors.Is(err, errs.ErrHashCollision):
		r.fallback[key] = id
	default:
		// ErrEmptyKey: states without a name still get an id, reachable by key only
		r.fallback[key] = id
	}

	return id
}
