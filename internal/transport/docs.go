// package transport implements the HTTP/1.1 *message syntax* the browser
// speaks on its own connections, as defined by HTTP/1.1 (RFC9112).
//
// only a subset is implemented: requests are always a bodyless GET, and
// response bodies must be framed either by Content-Length or by the server
// closing the connection. Transfer-Encoding and Content-Encoding are refused
// with [ErrUnsupportedFraming] instead of being decoded.

package transport
