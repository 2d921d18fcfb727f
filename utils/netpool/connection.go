package netpool

import (
	"bufio"
	"net"
	"sync/atomic"
	"time"

	"github.com/frankli0324/go-browse/utils/nettools"
)

// conn is a cached connection. Any I/O error marks it closed, a closed conn
// is never handed out again.
type conn struct {
	conn     net.Conn
	br       *bufio.Reader
	IsClosed atomic.Bool
	LastIdle time.Time
}

func newConn(c net.Conn) *conn {
	cc := &conn{conn: c}
	cc.br = bufio.NewReader(cc)
	return cc
}

func (c *conn) Available() bool {
	return !c.IsClosed.Load() && nettools.Alive(c.conn)
}

func (c *conn) Write(p []byte) (n int, err error) {
	n, err = c.conn.Write(p)
	if err != nil {
		c.Close()
	}
	return
}

func (c *conn) Read(p []byte) (n int, err error) {
	n, err = c.conn.Read(p)
	if err != nil {
		c.Close()
	}
	return
}

func (c *conn) Close() error {
	if c.IsClosed.Swap(true) {
		return nil
	}
	return c.conn.Close()
}
