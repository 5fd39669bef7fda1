package collision

import (
	"fmt"

	"github.com/arloliu/anvil/errs"
)

// Tracker records which key owns each 64-bit hash and detects hash collisions.
// It maintains a hash-to-key map and an ordered list of keys in tracking order.
//
// A Tracker is not safe for concurrent use; callers hold their own lock.
type Tracker struct {
	owners   map[uint64]string   // hash → first key seen with that hash
	collided map[uint64]struct{} // hashes shared by more than one key
	keys     []string            // tracking order
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		owners:   make(map[uint64]string),
		collided: make(map[uint64]struct{}),
		keys:     make([]string, 0),
	}
}

// Track records key under hash.
//
// Returns:
//   - nil when the hash was unused and key now owns it
//   - errs.ErrEmptyKey for an empty key
//   - errs.ErrDuplicateKey when key already owns hash
//   - errs.ErrHashCollision when a different key owns hash; key is still tracked
//     and the hash is marked as collided
func (t *Tracker) Track(key string, hash uint64) error {
	if key == "" {
		return errs.ErrEmptyKey
	}

	if owner, exists := t.owners[hash]; exists {
		if owner == key {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
		}
		t.collided[hash] = struct{}{}
		t.keys = append(t.keys, key)

		return fmt.Errorf("%w: %q and %q share hash %#016x", errs.ErrHashCollision, owner, key, hash)
	}

	t.owners[hash] = key
	t.keys = append(t.keys, key)

	return nil
}

// Owner returns the key that first claimed hash.
func (t *Tracker) Owner(hash uint64) (string, bool) {
	key, ok := t.owners[hash]
	return key, ok
}

// Collided reports whether more than one key was tracked under hash.
func (t *Tracker) Collided(hash uint64) bool {
	_, ok := t.collided[hash]
	return ok
}

// HasCollision returns true if any collision has been detected.
func (t *Tracker) HasCollision() bool {
	return len(t.collided) > 0
}

// Keys returns the tracked keys in tracking order.
func (t *Tracker) Keys() []string {
	return t.keys
}

// Count returns the number of tracked keys.
func (t *Tracker) Count() int {
	return len(t.keys)
}

// Reset clears all tracked keys and collision state.
func (t *Tracker) Reset() {
	clear(t.owners)
	clear(t.collided)
	t.keys = t.keys[:0]
}
