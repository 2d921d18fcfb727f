package dialer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"

	"github.com/frankli0324/go-browse/internal/url"
)

var zeroDialer net.Dialer
var customDnsDialer = net.Dialer{
	Resolver: &customServerResolver,
}

func (d *CoreDialer) Dial(ctx context.Context, u *url.URL) (net.Conn, error) {
	if !u.IsNetwork() {
		return nil, fmt.Errorf("dialer: %s URLs have no endpoint", u.Scheme)
	}
	addr, err := u.ASCIIHost()
	if err != nil {
		return nil, fmt.Errorf("dialer: invalid host %q: %w", u.Host, err)
	}
	port := strconv.Itoa(u.Port)

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	// as of now net.Dialer could handle current DNS configurations
	network, dialer, dialctx, dst := "tcp", &net.Dialer{}, ctx, net.JoinHostPort(addr, port)
	if cfg := d.ResolveConfig; cfg != nil {
		if cfg.Network == "ip4" {
			network = "tcp4"
		} else if cfg.Network == "ip6" {
			network = "tcp6"
		}
		if static, ok := cfg.StaticHosts[addr]; ok {
			dst = net.JoinHostPort(static, port)
		}
		if dns := cfg.CustomDNSServer; dns != "" {
			dialctx = dnsServerCtx{dialctx, dns}
			dialer = &customDnsDialer
		}
	}

	conn, err := dialer.DialContext(dialctx, network, dst)
	if err != nil {
		return nil, err
	}
	if u.Scheme != url.SchemeHTTPS {
		return conn, nil
	}

	config := d.TLSConfig.Clone()
	if config == nil {
		config = &tls.Config{}
	}
	config.ServerName = addr
	c := tls.Client(conn, config)
	if err := c.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}
