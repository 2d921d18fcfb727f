package transport

import (
	"errors"
	"strconv"
)

var (
	// ErrUnsupportedFraming is returned for responses carrying a
	// Transfer-Encoding or Content-Encoding header.
	ErrUnsupportedFraming = errors.New("unsupported response framing")

	// ErrNoResponse is returned when the connection was closed or reset
	// before a single byte of the status line arrived.
	ErrNoResponse = errors.New("connection closed before response")

	// ErrHeaderTooLarge is returned when the status line and headers
	// exceed MaxHeaderBytes.
	ErrHeaderTooLarge = errors.New("response header too large")

	ErrShortBody = errors.New("response body shorter than Content-Length")
)

// ProtocolError reports a malformed response preamble.
type ProtocolError struct {
	Msg  string
	Line string
}

func (e *ProtocolError) Error() string {
	if e.Line == "" {
		return "malformed HTTP response: " + e.Msg
	}
	return "malformed HTTP response: " + e.Msg + " in " + strconv.Quote(e.Line)
}

type wrapErr struct {
	sentinel error
	error
}

func (e wrapErr) Error() string {
	return e.sentinel.Error() + ": " + e.error.Error()
}

func (e wrapErr) Unwrap() []error {
	return []error{e.sentinel, e.error}
}
