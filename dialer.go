package browse

import (
	"github.com/frankli0324/go-browse/internal/dialer"
)

// Dialers are responsible for opening the connections requests are written
// to, e.g. a raw TCP connection for http: or a TLS one for https:.
//
// A Dialer MUST NOT hold connection states, which means it can be swapped
// out of an [Engine] without pain. Connections are cached by the engine.
type Dialer = dialer.Dialer

// CoreDialer is the default implementation of the [Dialer] interface.
type CoreDialer = dialer.CoreDialer

// ResolveConfig customizes name resolution: static host overrides,
// address family and a custom DNS server.
type ResolveConfig = dialer.ResolveConfig
