// package engine loads the document behind a URL. Network URLs are fetched
// over HTTP/1.1 on connections the engine opens and caches itself, one per
// endpoint, following redirects up to a bound.
package engine

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/frankli0324/go-browse/internal/config"
	"github.com/frankli0324/go-browse/internal/dialer"
	"github.com/frankli0324/go-browse/internal/model"
	"github.com/frankli0324/go-browse/internal/transport"
	"github.com/frankli0324/go-browse/internal/url"
	"github.com/frankli0324/go-browse/utils/netpool"
)

// Handler performs one request/response cycle on a borrowed connection. The
// returned response body has not been read yet.
type Handler = func(ctx context.Context, req *model.Request) (*model.Response, error)
type Middleware func(next Handler) Handler

// Engine is safe for concurrent use, exchanges with the same endpoint are
// serialized by the connection cache.
type Engine struct {
	middlewares []Middleware

	Dialer dialer.Dialer
	Cache  *netpool.Cache
	Logger *zap.Logger

	MaxRedirects int
	UserAgent    string
	// ReadTimeout bounds a whole exchange on a connection, from sending the
	// request to the last byte of the body. 0 means none.
	ReadTimeout time.Duration

	h1 transport.HTTP1
}

// New creates an engine from cfg. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	resolve := &dialer.ResolveConfig{
		CustomDNSServer: cfg.DNSServer,
		Network:         cfg.Network,
		StaticHosts:     cfg.StaticHosts,
	}
	e := &Engine{
		Dialer:       &dialer.CoreDialer{ResolveConfig: resolve, Timeout: cfg.ConnectTimeout},
		Cache:        netpool.NewCache(cfg.IdleTimeout),
		Logger:       logger,
		MaxRedirects: cfg.MaxRedirects,
		UserAgent:    cfg.UserAgent,
		ReadTimeout:  cfg.ReadTimeout,
	}
	e.Use(LogExchanges(logger))
	return e
}

// Use appends mw to the end of the chain. The last "Use"d mw executes first
func (e *Engine) Use(mws ...Middleware) {
	e.middlewares = append(e.middlewares, mws...)
}

// Close closes every cached connection.
func (e *Engine) Close() error {
	return e.Cache.Close()
}

// Fetch loads u following at most e.MaxRedirects redirects.
func (e *Engine) Fetch(ctx context.Context, u *url.URL) (model.Result, error) {
	return e.FetchWithLimit(ctx, u, e.MaxRedirects)
}

// FetchWithLimit loads u. Soft failures such as a missing file come back as
// a [model.Result] with a non-document Kind, an error means the fetch was
// aborted.
func (e *Engine) FetchWithLimit(ctx context.Context, u *url.URL, maxRedirects int) (model.Result, error) {
	switch u.Scheme {
	case url.SchemeViewSource:
		inner, err := u.Inner()
		if err != nil {
			return model.Result{}, err
		}
		r, err := e.FetchWithLimit(ctx, inner, maxRedirects)
		r.ViewSource = true
		return r, err
	case url.SchemeFile:
		return fetchFile(u.Path)
	case url.SchemeData:
		return fetchData(u), nil
	case url.SchemeHTTP, url.SchemeHTTPS:
		return e.fetchHTTP(ctx, u, maxRedirects)
	}
	return model.Result{}, &url.UnsupportedSchemeError{Scheme: string(u.Scheme)}
}

func (e *Engine) fetchHTTP(ctx context.Context, u *url.URL, maxRedirects int) (model.Result, error) {
	for redirects := 0; ; redirects++ {
		if redirects > maxRedirects {
			return model.Failure(model.KindTooManyRedirects, model.MsgTooManyRedirects), nil
		}
		body, next, err := e.load(ctx, u)
		if err != nil {
			return model.Result{}, fmt.Errorf("fetch %s: %w", u, err)
		}
		if next == nil {
			return model.Document(decodeText(body)), nil
		}
		e.Logger.Debug("following redirect", zap.Stringer("from", u), zap.Stringer("to", next))
		u = next
	}
}

// load performs a single exchange with the endpoint of u. It returns either
// the body of a final response, or the target of a redirect.
func (e *Engine) load(ctx context.Context, u *url.URL) ([]byte, *url.URL, error) {
	h, err := e.Cache.Acquire(ctx, u.Endpoint(), func(ctx context.Context) (net.Conn, error) {
		e.Logger.Debug("dialing", zap.Stringer("endpoint", u.Endpoint()))
		return e.Dialer.Dial(ctx, u)
	})
	if err != nil {
		return nil, nil, err
	}
	if h.Reused() {
		e.Logger.Debug("reusing connection", zap.Stringer("endpoint", u.Endpoint()))
	}

	resp, err := e.exchange(ctx, h, &model.Request{URL: u, UserAgent: e.UserAgent})
	if err != nil {
		h.Evict()
		return nil, nil, err
	}

	if loc, ok := resp.Header.Get("location"); ok && resp.IsRedirect() {
		transport.Discard(resp)
		// never carry a connection across a redirect, even to the same host
		h.Evict()
		next, err := u.Resolve(loc)
		if err != nil {
			return nil, nil, fmt.Errorf("redirect to %q: %w", loc, err)
		}
		return nil, next, nil
	}

	body, err := transport.ReadBody(resp)
	if err != nil {
		h.Evict()
		return nil, nil, err
	}
	if resp.ContentLength < 0 || !resp.KeepAlive() {
		e.Logger.Debug("evicting connection", zap.Stringer("endpoint", u.Endpoint()),
			zap.Int64("contentLength", resp.ContentLength), zap.Bool("keepAlive", resp.KeepAlive()))
		h.Evict()
	} else {
		h.Release()
	}
	return body, nil, nil
}

// exchange sends req and reads the response preamble. A cached connection
// the server gave up on is replaced once by a fresh one and the request
// resent, any other failure is final.
func (e *Engine) exchange(ctx context.Context, h *netpool.Handle, req *model.Request) (*model.Response, error) {
	next := e.roundTrip(h)
	for i := 0; i < len(e.middlewares); i++ {
		next = e.middlewares[i](next)
	}

	resp, err := next(ctx, req)
	if err == nil || !h.Reused() || !stale(err) {
		return resp, err
	}
	e.Logger.Debug("cached connection is stale, redialing",
		zap.Stringer("endpoint", req.URL.Endpoint()), zap.Error(err))
	if err := h.Redial(ctx); err != nil {
		return nil, err
	}
	return next(ctx, req)
}

func (e *Engine) roundTrip(h *netpool.Handle) Handler {
	return func(ctx context.Context, req *model.Request) (*model.Response, error) {
		if e.ReadTimeout > 0 {
			if err := h.SetDeadline(time.Now().Add(e.ReadTimeout)); err != nil {
				return nil, sendError{err}
			}
		}
		if err := e.h1.Write(h, req); err != nil {
			return nil, sendError{err}
		}
		resp := &model.Response{}
		if err := e.h1.Read(h.Reader(), resp); err != nil {
			return nil, err
		}
		return resp, nil
	}
}
