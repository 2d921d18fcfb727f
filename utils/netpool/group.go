package netpool

import (
	"context"
	"net"
	"sync"
	"time"
)

// Dial opens a new connection for a cache key.
type Dial func(ctx context.Context) (net.Conn, error)

// Cache keeps at most one live connection per key. Callers borrow a
// connection with [Cache.Acquire] and give it back with [Handle.Release]
// or [Handle.Evict]. While borrowed, nobody else can acquire the same key.
type Cache struct {
	sync.RWMutex
	entries map[interface{}]*entry

	// MaxIdle closes cached connections idle for longer, 0 keeps them
	// until the peer goes away.
	MaxIdle time.Duration
}

func NewCache(maxIdle time.Duration) *Cache {
	return &Cache{entries: map[interface{}]*entry{}, MaxIdle: maxIdle}
}

// entry is held locked for the whole exchange.
type entry struct {
	sync.Mutex
	c *conn
}

func (g *Cache) entry(key interface{}) *entry {
	g.RLock()
	e, ok := g.entries[key]
	g.RUnlock()
	if ok {
		return e
	}
	g.Lock()
	if e, ok = g.entries[key]; !ok {
		e = &entry{}
		g.entries[key] = e
	}
	g.Unlock()
	return e
}

// Acquire returns the cached connection for key, or dials a new one if there
// is none or the cached one is closed, idle for too long or shut down by
// the peer.
func (g *Cache) Acquire(ctx context.Context, key interface{}, dial Dial) (*Handle, error) {
	e := g.entry(key)
	e.Lock()
	h := &Handle{e: e, dial: dial}
	if c := e.c; c != nil {
		stale := g.MaxIdle != 0 && time.Since(c.LastIdle) > g.MaxIdle
		if !stale && c.Available() {
			h.reused = true
			return h, nil
		}
		c.Close()
		e.c = nil
	}
	if err := h.redial(ctx); err != nil {
		e.Unlock()
		return nil, err
	}
	return h, nil
}

// Len returns the number of connections currently cached.
func (g *Cache) Len() int {
	g.RLock()
	defer g.RUnlock()
	n := 0
	for _, e := range g.entries {
		e.Lock()
		if e.c != nil && !e.c.IsClosed.Load() {
			n++
		}
		e.Unlock()
	}
	return n
}

// Close closes every idle cached connection, borrowed ones are waited for.
func (g *Cache) Close() error {
	g.Lock()
	defer g.Unlock()
	for k, e := range g.entries {
		e.Lock()
		if e.c != nil {
			e.c.Close()
			e.c = nil
		}
		e.Unlock()
		delete(g.entries, k)
	}
	return nil
}
