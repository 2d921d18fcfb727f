package engine

import (
	"errors"
	"io"
	"net"
	"os"
	"syscall"

	"github.com/frankli0324/go-browse/internal/transport"
)

// sendError marks failures while writing the request.
type sendError struct {
	error
}

func (e sendError) Unwrap() error {
	return e.error
}

// stale tells whether err shows that the server closed a kept-alive
// connection before it saw our request.
func stale(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return false
	}
	if errors.Is(err, transport.ErrNoResponse) {
		return true
	}
	var se sendError
	if !errors.As(err, &se) {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.EOF)
}
