package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	myRedisRepo "github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/db/redis"
	myGrpc "github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/grpc"
	grpcmw "github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/grpc/middleware"
	myHttp "github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http"
	httpmw "github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/app/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/app/auth/password"
	appsvc "github.com/Miraines/MoonyAndStarry/finance-service/internal/app/auth/service"
	ledgersvc "github.com/Miraines/MoonyAndStarry/finance-service/internal/app/ledger/service"
	authRepo "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/repo"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/health"
	lg "github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/metrics"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/server"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg.Must("", false).Fatal("failed to load config", zap.Error(err))
	}

	zapLog := lg.Must(cfg.LogLevel, cfg.IsProduction())
	defer zapLog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(rootCtx, cfg, zapLog); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
		_ = zapLog.Sync()
		os.Exit(1)
	}
}

func run(rootCtx context.Context, cfg *config.Config, zapLog *zap.Logger) error {
	startCtx, cancel := context.WithTimeout(rootCtx, 15*time.Second)
	defer cancel()

	st, err := openStore(startCtx, cfg, zapLog)
	if err != nil {
		return err
	}
	defer st.close()
	probes := []health.Probe{st.probe}

	var subjectCache authRepo.SubjectCache
	if cfg.RedisAddress != "" {
		redisCli, err := myRedisRepo.NewClient(startCtx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer redisCli.Close()

		cache := myRedisRepo.NewRedisSubjectCache(redisCli)
		subjectCache = cache
		probes = append(probes, health.Probe{Name: "redis", Check: cache.Ping})
	}

	jwtUtil, err := jwt.NewJWTUtil(cfg)
	if err != nil {
		return err
	}
	hasher := password.NewHasher(cfg.PasswordPepper, password.DefaultParams)
	validate := validation.New()

	authSvc := appsvc.New(st.users, hasher, jwtUtil, validate)
	ledgerSvc := ledgersvc.New(st.transactions, validate)

	var checker httpmw.SubjectChecker
	if cfg.CheckSubject {
		checker = appsvc.NewSubjectGuard(st.users, subjectCache, cfg.SubjectCacheTTL, zapLog)
	}

	m := metrics.New()
	healthChecker := health.NewChecker(2*time.Second, probes...)

	g, ctx := errgroup.WithContext(rootCtx)

	handler := myHttp.NewHandler(authSvc, ledgerSvc, healthChecker, m, zapLog)
	router := myHttp.NewRouter(ctx, myHttp.RouterConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: cfg.AllowCredentials,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	}, handler, jwtUtil, checker, m, zapLog)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.GRPCAddress != "" {
		g.Go(func() error {
			return server.StartGRPCServer(ctx, cfg, grpcmw.ChainConfig{
				RateLimitRPS:   cfg.RateLimitRPS,
				RateLimitBurst: cfg.RateLimitBurst,
				Verifier:       jwtUtil,
				Checker:        checker,
			}, myGrpc.NewHealthHandler(healthChecker, zapLog), zapLog)
		})
	}

	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddress), zap.Bool("tls", cfg.TLSEnabled()))
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.HTTPSCertFile, cfg.HTTPSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		zapLog.Info("shutdown signal received")

		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctxShutdown)
	})

	return g.Wait()
}
