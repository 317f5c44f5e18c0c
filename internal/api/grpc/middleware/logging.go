package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dtroode/healthnest-server/internal/logger"
)

// Logging is a unary interceptor that logs every call with its outcome.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method, caller address, duration and status code. Failed
// calls are logged at error level with the error text.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := codes.OK
	if err != nil {
		code = codes.Internal
		if st, ok := status.FromError(err); ok {
			code = st.Code()
		}
	}

	args := []any{
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"code", code.String(),
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		args = append(args, "peer", p.Addr.String())
	}

	if err != nil {
		l.logger.Error("GRPC: call failed", append(args, "error", err)...)
		return resp, err
	}

	l.logger.Debug("GRPC: call completed", args...)
	return resp, nil
}

// Recover turns a handler panic into an Internal status and logs it.
func (l *Logging) Recover(ctx context.Context, p any) error {
	l.logger.Error("GRPC: handler panicked", "panic", p)
	return status.Error(codes.Internal, "internal server error")
}
