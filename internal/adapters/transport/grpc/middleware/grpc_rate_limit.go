package middleware

import (
	"context"
	"net"
	"time"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/ratelimit"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// NewRateLimitPerIP limits unary calls per peer IP. Idle peers are evicted
// until ctx is cancelled.
func NewRateLimitPerIP(
	ctx context.Context,
	limit, burst int,
	cacheSize int,
	ttl time.Duration,
) grpc.UnaryServerInterceptor {
	visitors := ratelimit.NewPerKey(limit, burst, cacheSize, ttl)
	go visitors.RunEviction(ctx)

	return func(
		ctx context.Context,
		req any,
		_ *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		p, ok := peer.FromContext(ctx)
		if !ok || p.Addr == nil {
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		host, _, err := net.SplitHostPort(p.Addr.String())
		if err != nil {
			host = p.Addr.String()
		}

		if !visitors.Allow(host) {
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		return handler(ctx, req)
	}
}
