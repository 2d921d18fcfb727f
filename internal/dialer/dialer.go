package dialer

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/frankli0324/go-browse/internal/url"
)

// Dialers handle pretty much everything related to opening a connection to
// an endpoint: name resolution, the TCP connect and the TLS handshake. A
// Dialer MUST NOT hold connection states, caching connections is the job
// of the connection cache.
type Dialer interface {
	// Dial returns a connection to the endpoint of u, TLS wrapped when the
	// scheme is https.
	Dial(ctx context.Context, u *url.URL) (net.Conn, error)
}

type CoreDialer struct {
	ResolveConfig *ResolveConfig

	TLSConfig *tls.Config // the config to use, ServerName is always overwritten

	// Timeout bounds the TCP connect and the TLS handshake, 0 means none.
	Timeout time.Duration
}
