package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/andrescamacho/manoria-go/internal/application/mediator"
)

// Middleware puts a request-scoped logger into the context and logs the outcome
// of every request. Failures log at warn, successes at debug.
func Middleware(base *slog.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := base.With("request", mediator.RequestName(request))
		ctx = WithLogger(ctx, logger)

		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			logger.WarnContext(ctx, "request failed", "duration", elapsed, "error", err)
		} else {
			logger.DebugContext(ctx, "request handled", "duration", elapsed)
		}
		return response, err
	}
}
