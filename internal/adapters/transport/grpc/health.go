package grpc

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/health"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the name reported for the whole finance API.
const ServiceName = "finance.v1"

// HealthHandler answers grpc.health.v1 checks by running the dependency probes.
type HealthHandler struct {
	healthpb.UnimplementedHealthServer
	checker *health.Checker
	logger  *zap.Logger
}

func NewHealthHandler(checker *health.Checker, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{checker: checker, logger: logger}
}

func (h *HealthHandler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}

	for name, err := range h.checker.Run(ctx) {
		h.logger.Warn("gRPC HealthCheck probe failed", zap.String("probe", name), zap.Error(err))
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
