package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/frankli0324/go-browse/internal/model"
)

// LogExchanges logs every request/response cycle at debug level.
func LogExchanges(logger *zap.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			if err != nil {
				logger.Debug("exchange failed", zap.Stringer("url", req.URL),
					zap.Duration("elapsed", time.Since(start)), zap.Error(err))
				return resp, err
			}
			logger.Debug("exchange", zap.Stringer("url", req.URL), zap.Int("status", resp.StatusCode),
				zap.Int64("contentLength", resp.ContentLength), zap.Duration("elapsed", time.Since(start)))
			return resp, nil
		}
	}
}
