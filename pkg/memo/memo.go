// Package memo implements bounded result caches with the eviction policies
// that function definitions can ask for.
package memo

import (
	"strconv"

	"src.reggae.sh/pkg/eval/errs"
)

// Policy picks the entry to evict when a full cache receives a new entry.
type Policy int

// Possible values of Policy.
const (
	// LRU evicts the least recently used entry.
	LRU Policy = iota
	// MRU evicts the most recently used entry.
	MRU
	// LFU evicts the least frequently used entry.
	LFU
	// MFU evicts the most frequently used entry.
	MFU
)

var policyNames = [...]string{LRU: "lru", MRU: "mru", LFU: "lfu", MFU: "mfu"}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return "!!policy"
	}
	return policyNames[p]
}

// ParsePolicy parses the name of a policy.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if s == name {
			return Policy(p), nil
		}
	}
	return 0, errs.TypeMismatch{What: "cache policy", Valid: "lru, mru, lfu or mfu", Actual: strconv.Quote(s)}
}

// Unbounded is the capacity of a cache that never evicts.
const Unbounded = -1

// Cache maps keys to values, evicting according to its policy when it holds
// more than its capacity. The zero value is not usable; use New.
type Cache[V any] struct {
	policy   Policy
	capacity int
	entries  map[string]*entry[V]
	// Logical clock, advanced on every access.
	clock uint64
}

type entry[V any] struct {
	value    V
	lastUse  uint64
	inserted uint64
	uses     int
}

// New creates a cache. The capacity must be Unbounded or positive.
func New[V any](p Policy, capacity int) (*Cache[V], error) {
	if capacity != Unbounded && capacity < 1 {
		return nil, errs.OutOfRange{
			What: "cache capacity", ValidLow: "1", ValidHigh: "∞",
			Actual: strconv.Itoa(capacity)}
	}
	return &Cache[V]{policy: p, capacity: capacity, entries: make(map[string]*entry[V])}, nil
}

// Policy returns the eviction policy of the cache.
func (c *Cache[V]) Policy() Policy { return c.policy }

// Cap returns the capacity of the cache.
func (c *Cache[V]) Cap() int { return c.capacity }

// Len returns the number of entries.
func (c *Cache[V]) Len() int { return len(c.entries) }

// Get looks up a key and counts the access as a use.
func (c *Cache[V]) Get(key string) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.clock++
	e.lastUse = c.clock
	e.uses++
	return e.value, true
}

// Put inserts or replaces an entry. If the insertion of a new key makes the
// cache exceed its capacity, an entry other than the new one is evicted and
// its key is returned.
func (c *Cache[V]) Put(key string, v V) (evicted string, ok bool) {
	c.clock++
	if e, exists := c.entries[key]; exists {
		e.value = v
		e.lastUse = c.clock
		e.uses++
		return "", false
	}
	if c.capacity != Unbounded && len(c.entries) >= c.capacity {
		evicted = c.victim()
		delete(c.entries, evicted)
		ok = true
	}
	c.entries[key] = &entry[V]{value: v, lastUse: c.clock, inserted: c.clock, uses: 1}
	return evicted, ok
}

func (c *Cache[V]) victim() string {
	var (
		best  string
		bestE *entry[V]
	)
	for key, e := range c.entries {
		if bestE == nil || c.worse(e, bestE) {
			best, bestE = key, e
		}
	}
	return best
}

// Reports whether a should be evicted before b. Frequency ties go to the
// entry inserted first.
func (c *Cache[V]) worse(a, b *entry[V]) bool {
	switch c.policy {
	case LRU:
		return a.lastUse < b.lastUse
	case MRU:
		return a.lastUse > b.lastUse
	case LFU:
		if a.uses != b.uses {
			return a.uses < b.uses
		}
	case MFU:
		if a.uses != b.uses {
			return a.uses > b.uses
		}
	}
	return a.inserted < b.inserted
}
