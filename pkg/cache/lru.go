package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultLRUSize bounds an LRU created with a non-positive size.
const DefaultLRUSize = 4096

type lruEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time // zero: no expiry
}

// LRU is a bounded in-memory cache that evicts the least recently used
// entry once full. It is safe for concurrent use.
type LRU[V any] struct {
	mu      sync.Mutex
	size    int
	ttl     time.Duration
	items   map[string]*list.Element
	order   *list.List // front: most recently used
	onEvict func(key string, value V)
	now     func() time.Time
	sf      singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// LRUOption configures an LRU.
type LRUOption[V any] func(*LRU[V])

// WithTTL sets the expiry applied when Set is called with a zero ttl.
// Entries never expire by default.
func WithTTL[V any](d time.Duration) LRUOption[V] {
	return func(c *LRU[V]) {
		c.ttl = d
	}
}

// WithEvictCallback registers fn for entries dropped by capacity or expiry.
func WithEvictCallback[V any](fn func(key string, value V)) LRUOption[V] {
	return func(c *LRU[V]) {
		c.onEvict = fn
	}
}

// WithClock replaces time.Now.
func WithClock[V any](now func() time.Time) LRUOption[V] {
	return func(c *LRU[V]) {
		c.now = now
	}
}

// NewLRU creates an LRU holding at most size entries.
func NewLRU[V any](size int, opts ...LRUOption[V]) *LRU[V] {
	if size <= 0 {
		size = DefaultLRUSize
	}
	c := &LRU[V]{
		size:  size,
		items: make(map[string]*list.Element, size),
		order: list.New(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *LRU[V]) Get(_ context.Context, key string) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, ErrNotFound
	}
	e := el.Value.(*lruEntry[V])
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.remove(el, true)
		c.misses.Add(1)
		var zero V
		return zero, ErrNotFound
	}

	c.order.MoveToFront(el)
	c.hits.Add(1)
	return e.value, nil
}

func (c *LRU[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*lruEntry[V])
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return nil
	}

	for len(c.items) >= c.size {
		c.remove(c.order.Back(), true)
	}
	c.items[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

func (c *LRU[V]) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.remove(el, false)
	}
	return nil
}

func (c *LRU[V]) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
	c.order.Init()
	return nil
}

// Len returns the number of entries, including expired ones not yet dropped.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats reports cache hits and misses since creation.
func (c *LRU[V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *LRU[V]) flight() *singleflight.Group {
	return &c.sf
}

// remove must be called with mu held.
func (c *LRU[V]) remove(el *list.Element, evicted bool) {
	e := c.order.Remove(el).(*lruEntry[V])
	delete(c.items, e.key)
	if evicted && c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

var _ Cache[any] = (*LRU[any])(nil)
