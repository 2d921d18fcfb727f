// Package browse fetches documents the way a small browser does: it parses
// an address, loads file:, data: and view-source: addresses locally and
// speaks HTTP/1.1 itself, over connections it caches per endpoint, for
// http: and https:.
package browse

import (
	"github.com/frankli0324/go-browse/internal/config"
	"github.com/frankli0324/go-browse/internal/engine"
	"github.com/frankli0324/go-browse/internal/logging"
	"github.com/frankli0324/go-browse/internal/model"
	"github.com/frankli0324/go-browse/internal/url"
)

type Engine = engine.Engine
type Middleware = engine.Middleware
type Config = config.Config

type URL = url.URL
type Result = model.Result
type Kind = model.Kind

const (
	KindDocument         = model.KindDocument
	KindFileNotFound     = model.KindFileNotFound
	KindMalformedData    = model.KindMalformedData
	KindDecodeError      = model.KindDecodeError
	KindTooManyRedirects = model.KindTooManyRedirects
)

// Parse parses an address, see [url.Parse] for the accepted grammar.
func Parse(text string) (*URL, error) {
	return url.Parse(text)
}

// New returns an engine configured from the environment, falling back to
// the defaults when the environment is invalid.
func New() *Engine {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	logger, err := logging.New(logging.Config{Level: cfg.Level, Development: cfg.Development})
	if err != nil {
		logger = logging.NewDefault()
	}
	return engine.New(cfg, logger)
}
