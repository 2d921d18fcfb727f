// package url parses the addresses accepted by the browser. It is not a general
// RFC 3986 parser: the grammar is deliberately small and tailored to the
// schemes the engine knows how to load.
//
// A parsed [URL] is one of four variants, selected solely by its Scheme:
//
//	http, https   Host, Port and Path are meaningful
//	file          Path is a local file path
//	data          Path holds the whole "data...,payload" text
//	view-source   Target holds another, not yet parsed, address
package url

import (
	"net"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

type Scheme string

const (
	SchemeHTTP       Scheme = "http"
	SchemeHTTPS      Scheme = "https"
	SchemeFile       Scheme = "file"
	SchemeData       Scheme = "data"
	SchemeViewSource Scheme = "view-source"
)

const viewSourcePrefix = "view-source:"

var defaultPorts = map[Scheme]int{
	SchemeHTTP: 80, SchemeHTTPS: 443,
}

// DefaultPort returns the well known port of a network scheme, 0 otherwise.
func DefaultPort(s Scheme) int {
	return defaultPorts[s]
}

// Endpoint identifies a single network destination, it is the key of
// the connection cache.
type Endpoint struct {
	Host string
	Port int
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// URL is immutable after [Parse] returns it.
type URL struct {
	Scheme Scheme
	Host   string
	Port   int // 0 unless Scheme is http or https
	Path   string
	Target string // view-source only
}

// Parse parses text into a [URL]. Text without "://" is a local file path.
func Parse(text string) (*URL, error) {
	if strings.HasPrefix(text, viewSourcePrefix) {
		return &URL{Scheme: SchemeViewSource, Target: text[len(viewSourcePrefix):]}, nil
	}
	// loose on purpose: anything starting with "data" is a data URL,
	// including "data" without the colon.
	if strings.HasPrefix(text, "data") {
		return &URL{Scheme: SchemeData, Path: text}, nil
	}
	scheme, rest, found := strings.Cut(text, "://")
	if !found {
		return &URL{Scheme: SchemeFile, Path: text}, nil
	}

	switch s := Scheme(scheme); s {
	case SchemeHTTP, SchemeHTTPS:
		return parseNetwork(s, rest)
	case SchemeFile:
		return &URL{Scheme: SchemeFile, Path: "/" + strings.TrimLeft(rest, "/")}, nil
	default:
		return nil, &UnsupportedSchemeError{Scheme: scheme}
	}
}

func parseNetwork(s Scheme, rest string) (*URL, error) {
	u := &URL{Scheme: s, Port: defaultPorts[s]}
	host, p, _ := strings.Cut(rest, "/")
	u.Path = "/" + p
	if h, port, ok := strings.Cut(host, ":"); ok {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return nil, &InvalidPortError{Port: port, Err: err}
		}
		host, u.Port = h, n
	}
	if host == "" {
		return nil, InvalidHostError("empty host")
	}
	u.Host = host
	return u, nil
}

func (u *URL) IsNetwork() bool {
	return u.Scheme == SchemeHTTP || u.Scheme == SchemeHTTPS
}

// Endpoint returns the (host, port) pair of a network URL.
func (u *URL) Endpoint() Endpoint {
	return Endpoint{Host: u.Host, Port: u.Port}
}

// ASCIIHost returns Host in the punycode form that DNS, TLS server names
// and the Host header expect. ASCII hosts are returned unchanged.
func (u *URL) ASCIIHost() (string, error) {
	for i := 0; i < len(u.Host); i++ {
		if u.Host[i] >= utf8.RuneSelf {
			return idna.Lookup.ToASCII(u.Host)
		}
	}
	return u.Host, nil
}

// HostHeader is the value sent in the Host request header, the port
// is only included when it differs from the scheme default.
func (u *URL) HostHeader() string {
	host, err := u.ASCIIHost()
	if err != nil {
		// such a host is never dialed, so no request carries it
		host = u.Host
	}
	return u.authority(host)
}

func (u *URL) authority(host string) string {
	if u.Port == DefaultPort(u.Scheme) {
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(u.Port))
}

// RequestURI is the request target of the HTTP request line, it is Path
// with the fragment dropped.
func (u *URL) RequestURI() string {
	p, _, _ := strings.Cut(u.Path, "#")
	return p
}

// Inner parses the address wrapped by a view-source URL.
func (u *URL) Inner() (*URL, error) {
	return Parse(u.Target)
}

// Data splits a data URL once on its first comma. The mediatype part
// keeps the leading "data:".
func (u *URL) Data() (mediatype, payload string, ok bool) {
	return strings.Cut(u.Path, ",")
}

func (u *URL) origin() string {
	return string(u.Scheme) + "://" + u.authority(u.Host)
}

// String re-serialises u, [Parse] of the result yields an equal URL.
func (u *URL) String() string {
	switch u.Scheme {
	case SchemeHTTP, SchemeHTTPS:
		return u.origin() + u.Path
	case SchemeFile:
		if strings.HasPrefix(u.Path, "/") {
			return "file://" + u.Path
		}
		return u.Path
	case SchemeViewSource:
		return viewSourcePrefix + u.Target
	default:
		return u.Path
	}
}
