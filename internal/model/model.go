package model

import (
	"io"
	"strings"

	"github.com/frankli0324/go-browse/internal/url"
)

// Request is a single GET exchange. The engine never sends a body.
type Request struct {
	URL       *url.URL
	UserAgent string
}

// Header maps case-folded field names to trimmed values, last one wins.
type Header map[string]string

// Get looks up a field by its lower-case name.
func (h Header) Get(key string) (string, bool) {
	v, ok := h[key]
	return v, ok
}

// Response is the preamble of a response plus its framed body.
type Response struct {
	Proto      string
	Status     string // e.g. "301 Moved Permanently"
	StatusCode int
	Reason     string
	Header     Header

	ContentLength int64 // -1 when the body is delimited by connection close
	Body          io.Reader
}

func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// KeepAlive reports whether the server allows the connection to be reused
// after this response.
func (r *Response) KeepAlive() bool {
	conn, _ := r.Header.Get("connection")
	if r.Proto == "HTTP/1.0" {
		return equalFold(conn, "keep-alive")
	}
	return !equalFold(conn, "close")
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
