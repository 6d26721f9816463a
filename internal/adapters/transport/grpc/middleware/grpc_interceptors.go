package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	httpmw "github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/middleware"
	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/ratelimit"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Methods under these prefixes are served without a token.
var publicPrefixes = []string{
	"/grpc.health.v1.Health/",
	"/grpc.reflection.",
}

func RecoveryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return grpc_recovery.UnaryServerInterceptor(
		grpc_recovery.WithRecoveryHandler(func(p any) error {
			logger.Error("gRPC panic recovered", zap.Any("panic", p))
			return status.Error(codes.Internal, "internal error")
		}),
	)
}

func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return grpc_zap.UnaryServerInterceptor(logger)
}

func MetricsInterceptor() grpc.UnaryServerInterceptor {
	return grpc_prometheus.UnaryServerInterceptor
}

// AuthInterceptor validates the x-auth-token metadata of non-public methods
// and puts the subject into the handler context.
func AuthInterceptor(verifier httpmw.TokenVerifier, checker httpmw.SubjectChecker) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if isPublic(info.FullMethod) {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		raw := httpmw.ExtractToken(first(md, httpmw.TokenHeader), first(md, "authorization"))
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "authentication token is required")
		}

		claims, err := verifier.ValidateAccessToken(raw)
		if err != nil {
			return nil, MapError(err)
		}
		userID, err := claims.UserID()
		if err != nil {
			return nil, MapError(customErrors.ErrInvalidToken)
		}
		if checker != nil {
			ok, err := checker.Exists(ctx, userID)
			if err != nil {
				return nil, MapError(err)
			}
			if !ok {
				return nil, MapError(customErrors.ErrInvalidToken)
			}
		}

		return handler(httpmw.WithSubject(ctx, userID), req)
	}
}

type ChainConfig struct {
	RateLimitRPS   int
	RateLimitBurst int
	Verifier       httpmw.TokenVerifier
	Checker        httpmw.SubjectChecker
}

func ChainUnaryServer(ctx context.Context, logger *zap.Logger, cfg ChainConfig) grpc.UnaryServerInterceptor {
	interceptors := []grpc.UnaryServerInterceptor{
		RecoveryInterceptor(logger),
		LoggingInterceptor(logger),
		MetricsInterceptor(),
	}
	if cfg.RateLimitRPS > 0 {
		interceptors = append(interceptors,
			NewRateLimitPerIP(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, ratelimit.DefaultCacheSize, time.Hour))
	}
	if cfg.Verifier != nil {
		interceptors = append(interceptors, AuthInterceptor(cfg.Verifier, cfg.Checker))
	}
	return grpc_middleware.ChainUnaryServer(interceptors...)
}

func MapError(err error) error {
	switch {
	case errors.Is(err, customErrors.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, customErrors.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, customErrors.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "invalid token")
	case errors.Is(err, customErrors.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "email is already registered")
	case errors.Is(err, customErrors.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func isPublic(method string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(method, p) {
			return true
		}
	}
	return false
}

func first(md metadata.MD, key string) string {
	if v := md.Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}
