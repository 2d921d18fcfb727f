package netpool

import (
	"bufio"
	"context"
	"errors"
	"net"
	"time"
)

var ErrReleased = errors.New("netpool: handle already released")

// Handle is a borrowed connection. The connection behind it may be swapped
// with [Handle.Redial], Read and Write always go to the current one.
type Handle struct {
	e      *entry
	dial   Dial
	reused bool
}

// Reused reports whether the connection was taken from the cache rather
// than dialed for this handle.
func (h *Handle) Reused() bool { return h.reused }

func (h *Handle) current() (*conn, error) {
	if h.e == nil || h.e.c == nil {
		return nil, ErrReleased
	}
	return h.e.c, nil
}

func (h *Handle) Write(p []byte) (int, error) {
	c, err := h.current()
	if err != nil {
		return 0, err
	}
	return c.Write(p)
}

func (h *Handle) Read(p []byte) (int, error) {
	c, err := h.current()
	if err != nil {
		return 0, err
	}
	return c.br.Read(p)
}

// Reader returns the buffered reader of the current connection. It lives
// as long as the connection, bytes buffered after one response stay
// available to the next exchange.
func (h *Handle) Reader() *bufio.Reader {
	if c, err := h.current(); err == nil {
		return c.br
	}
	return nil
}

// Raw returns the current underlying connection.
func (h *Handle) Raw() net.Conn {
	if c, err := h.current(); err == nil {
		return c.conn
	}
	return nil
}

// Redial closes the current connection and replaces it in the cache with a
// freshly dialed one.
func (h *Handle) Redial(ctx context.Context) error {
	if h.e == nil {
		return ErrReleased
	}
	return h.redial(ctx)
}

func (h *Handle) redial(ctx context.Context) error {
	if h.e.c != nil {
		h.e.c.Close()
		h.e.c = nil
	}
	c, err := h.dial(ctx)
	if err != nil {
		return err
	}
	h.e.c = newConn(c)
	h.reused = false
	return nil
}

// SetDeadline applies to the current connection only, a connection put
// back with Release has its deadline cleared.
func (h *Handle) SetDeadline(t time.Time) error {
	c, err := h.current()
	if err != nil {
		return err
	}
	return c.conn.SetDeadline(t)
}

// Release returns the connection to the cache. A connection that saw an
// I/O error is evicted instead.
func (h *Handle) Release() {
	if h.e == nil {
		return
	}
	if c := h.e.c; c != nil {
		if c.IsClosed.Load() || c.conn.SetDeadline(time.Time{}) != nil {
			c.Close()
			h.e.c = nil
		} else {
			c.LastIdle = time.Now()
		}
	}
	h.e.Unlock()
	h.e = nil
}

// Evict closes the connection and removes it from the cache.
func (h *Handle) Evict() {
	if h.e == nil {
		return
	}
	if h.e.c != nil {
		h.e.c.Close()
		h.e.c = nil
	}
	h.e.Unlock()
	h.e = nil
}
