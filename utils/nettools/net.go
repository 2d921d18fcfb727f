// package nettools inspects the state of established connections below the
// net.Conn abstraction.
package nettools

import (
	"net"
	"syscall"
)

// Alive reports whether an idle connection can still carry a request. It
// returns false once the peer has shut down its side or reset the
// connection. Pending unread bytes do not make a connection dead, TLS
// peers may legitimately send records at any time.
//
// On platforms without a probe every connection is reported alive.
func Alive(c net.Conn) bool {
	rc := connToFD(c)
	if rc == nil {
		return true
	}
	return probe(rc)
}

func connToFD(raw net.Conn) syscall.RawConn {
	if t, ok := raw.(interface{ NetConn() net.Conn }); ok {
		// is *tls.Conn
		raw = t.NetConn()
	}
	if c, ok := raw.(syscall.Conn); ok {
		if c, err := c.SyscallConn(); err == nil {
			return c
		}
	}
	return nil
}
