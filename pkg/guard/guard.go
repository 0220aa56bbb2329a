package guard

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Map is a set of "operation in flight" markers for one operation family.
// A marker expires after the lease so a lost Release cannot block an id forever.
type Map struct {
	family string
	held   *cache.Cache
}

// New creates an empty guard map. A lease <= 0 disables expiry.
func New(family string, lease time.Duration) *Map {
	expiration := lease
	cleanup := lease
	if lease <= 0 {
		expiration = cache.NoExpiration
		cleanup = 0
	}
	return &Map{
		family: family,
		held:   cache.New(expiration, cleanup),
	}
}

func (m *Map) Family() string {
	return m.family
}

// TryAcquire sets the marker for id and reports whether it was free.
func (m *Map) TryAcquire(id string) bool {
	// Add fails when a live item already exists; the check and the set happen under one lock.
	return m.held.Add(id, time.Now(), cache.DefaultExpiration) == nil
}

// Release clears the marker. Releasing a free id is a no-op.
func (m *Map) Release(id string) {
	m.held.Delete(id)
}

func (m *Map) Held(id string) bool {
	_, found := m.held.Get(id)
	return found
}

// Len counts live markers.
func (m *Map) Len() int {
	return len(m.held.Items())
}

// Prune reclaims markers whose lease ran out and returns how many were dropped.
// A marker inside its lease belongs to a request that has not settled yet and is never
// dropped, whether or not its entity still exists; only Release clears it.
func (m *Map) Prune() int {
	before := m.held.ItemCount()
	m.held.DeleteExpired()
	return before - m.held.ItemCount()
}

// Families keeps toggle and delete markers in separate namespaces so the two
// operations never block each other on the same id.
type Families struct {
	Toggle *Map
	Delete *Map
}

func NewFamilies(lease time.Duration) *Families {
	return &Families{
		Toggle: New("toggle", lease),
		Delete: New("delete", lease),
	}
}

// Key composes a guard id from an entity kind and id.
func Key(kind, id string) string {
	return kind + ":" + id
}
