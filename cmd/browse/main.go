// Command browse prints the text of the document at a URL.
//
//	browse [url ...]
//
// Arguments are joined with spaces so data: URLs may contain them. Without
// arguments the default document ($BROWSE_DEFAULT_DOCUMENT, test.html in
// the working directory) is shown.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/frankli0324/go-browse/internal/config"
	"github.com/frankli0324/go-browse/internal/engine"
	"github.com/frankli0324/go-browse/internal/logging"
	"github.com/frankli0324/go-browse/internal/render"
	"github.com/frankli0324/go-browse/internal/url"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run loads the address named by args and returns the exit code: 1 when the
// fetch failed, 2 when the configuration is invalid.
func run(args []string, w io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger, err := logging.New(logging.Config{Level: cfg.Level, Development: cfg.Development})
	if err != nil {
		logger = logging.NewDefault()
	}
	defer logger.Sync()

	e := engine.New(cfg, logger)
	defer e.Close()

	if err := load(context.Background(), w, e, address(cfg, args)); err != nil {
		logger.Error("load failed", zap.Error(err))
		return 1
	}
	return 0
}

func address(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	abs, err := filepath.Abs(cfg.DefaultDocument)
	if err != nil {
		abs = cfg.DefaultDocument
	}
	return "file://" + abs
}

// load fetches addr and writes it to w, verbatim for view-source and
// rendered otherwise.
func load(ctx context.Context, w io.Writer, e *engine.Engine, addr string) error {
	u, err := url.Parse(addr)
	if err != nil {
		return err
	}
	r, err := e.Fetch(ctx, u)
	if err != nil {
		return err
	}
	if r.ViewSource {
		_, err = fmt.Fprintln(w, r.Text)
		return err
	}
	return render.Show(w, r.Text)
}
