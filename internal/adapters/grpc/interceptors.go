package grpc

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/manoria-go/internal/application/logging"
)

// rateLimitInterceptor rejects calls once the token bucket is empty
func rateLimitInterceptor(limiter *rate.Limiter) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !limiter.Allow() {
			return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded for %s", info.FullMethod)
		}
		return handler(ctx, req)
	}
}

// loggingInterceptor attaches the logger to the call context, logs the
// outcome, and converts domain errors into status errors.
func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		callLogger := logger.With("rpc", info.FullMethod)
		ctx = logging.WithLogger(ctx, callLogger)

		start := time.Now()
		resp, err := handler(ctx, req)
		err = toStatus(err)

		code := status.Code(err)
		attrs := []any{"code", code.String(), "duration", time.Since(start)}
		switch code {
		case codes.OK:
			callLogger.Debug("rpc completed", attrs...)
		case codes.Internal, codes.Unknown:
			callLogger.Error("rpc failed", append(attrs, "error", err)...)
		default:
			callLogger.Info("rpc rejected", append(attrs, "error", err)...)
		}
		return resp, err
	}
}
