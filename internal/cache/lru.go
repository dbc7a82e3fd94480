// internal/cache/lru.go
//
// Tiny LRU cache used by the session registry to cap live dialog sessions.
// No external deps; good for a few thousand entries.  Not goroutine-safe;
// callers hold their own lock.
package cache

import "container/list"

// LRU is a non-generic least-recently-used cache.
// Keys must be comparable; values can be any.
type LRU struct {
	cap     int
	ll      *list.List
	dict    map[any]*list.Element
	onEvict func(key, val any)
}

type pair struct {
	key any
	val any
}

// New returns an LRU with the given capacity.  onEvict, when non-nil, runs
// for every entry pushed out by Add (not for overwrites).  Panics on cap < 1.
func New(capacity int, onEvict func(key, val any)) *LRU {
	if capacity < 1 {
		panic("cache: capacity must be ≥1")
	}
	return &LRU{
		cap:     capacity,
		ll:      list.New(),
		dict:    make(map[any]*list.Element, capacity),
		onEvict: onEvict,
	}
}

// Get retrieves a value or nil and marks it MRU.
func (c *LRU) Get(key any) (val any, ok bool) {
	if ele, hit := c.dict[key]; hit {
		c.ll.MoveToFront(ele)
		return ele.Value.(pair).val, true
	}
	return nil, false
}

// Add inserts or updates a value, evicting the LRU entry when over capacity.
func (c *LRU) Add(key, val any) {
	if ele, hit := c.dict[key]; hit {
		ele.Value = pair{key, val}
		c.ll.MoveToFront(ele)
		return
	}
	ele := c.ll.PushFront(pair{key, val})
	c.dict[key] = ele
	if c.ll.Len() > c.cap {
		last := c.ll.Back()
		c.ll.Remove(last)
		p := last.Value.(pair)
		delete(c.dict, p.key)
		if c.onEvict != nil {
			c.onEvict(p.key, p.val)
		}
	}
}

// Remove deletes key without firing the eviction hook.
func (c *LRU) Remove(key any) {
	if ele, hit := c.dict[key]; hit {
		c.ll.Remove(ele)
		delete(c.dict, key)
	}
}

// Len reports current size.
func (c *LRU) Len() int { return c.ll.Len() }
