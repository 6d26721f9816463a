package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/grpc/middleware"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/config"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const stopTimeout = 5 * time.Second

// NewGRPCServer builds the server with the interceptor chain, health service,
// reflection and prometheus metrics registered.
func NewGRPCServer(
	ctx context.Context,
	cfg *config.Config,
	chain middleware.ChainConfig,
	healthSrv healthpb.HealthServer,
	logger *zap.Logger,
) (*grpc.Server, error) {
	opts := []grpc.ServerOption{
		grpc.UnaryInterceptor(middleware.ChainUnaryServer(ctx, logger, chain)),
	}
	if cfg.TLSEnabled() {
		creds, err := credentials.NewServerTLSFromFile(cfg.HTTPSCertFile, cfg.HTTPSKeyFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.Creds(creds))
	}

	grpcServer := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	reflection.Register(grpcServer)
	grpc_prometheus.Register(grpcServer)
	grpc_prometheus.EnableHandlingTimeHistogram()

	return grpcServer, nil
}

// ServeGRPC serves on lis until ctx is cancelled, then stops gracefully.
func ServeGRPC(ctx context.Context, grpcServer *grpc.Server, lis net.Listener, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("ctx cancelled, stopping gRPC server…")

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-stopCtx.Done():
		grpcServer.Stop()
	case <-done:
	}
	logger.Info("gRPC server stopped")
	return nil
}

// StartGRPCServer listens on cfg.GRPCAddress and serves until ctx is cancelled.
func StartGRPCServer(
	ctx context.Context,
	cfg *config.Config,
	chain middleware.ChainConfig,
	healthSrv healthpb.HealthServer,
	logger *zap.Logger,
) error {
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return err
	}
	grpcServer, err := NewGRPCServer(ctx, cfg, chain, healthSrv, logger)
	if err != nil {
		_ = lis.Close()
		return err
	}
	return ServeGRPC(ctx, grpcServer, lis, logger)
}
