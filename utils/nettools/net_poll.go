//go:build darwin || linux
// +build darwin linux

package nettools

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func probe(rc syscall.RawConn) bool {
	alive := true
	// It's annoying that golang docs didn't specify whether the
	// control action will be executed if error occurrs, however
	// errors only happen before the action, on a closed fd.
	if err := rc.Control(func(fd uintptr) {
		s := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(s, 0)
		if err != nil || n == 0 {
			return // nothing happened on an idle connection
		}
		if s[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			alive = false
			return
		}
		var b [1]byte
		n, _, err = unix.Recvfrom(int(fd), b[:], unix.MSG_PEEK|unix.MSG_DONTWAIT)
		switch {
		case err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR:
		case err != nil:
			alive = false // e.g. ECONNRESET
		case n == 0:
			alive = false // orderly shutdown by peer
		}
	}); err != nil {
		return false
	}
	return alive
}
