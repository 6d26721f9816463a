package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/response"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/metrics"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
	RateLimitRPS     int
	RateLimitBurst   int
}

// NewRouter wires middleware and routes. ctx bounds background work such as
// rate-limiter eviction.
func NewRouter(
	ctx context.Context,
	cfg RouterConfig,
	h *Handler,
	verifier middleware.TokenVerifier,
	checker middleware.SubjectChecker,
	m *metrics.Metrics,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	if m != nil {
		router.Use(m.Middleware())
	}
	if cfg.RateLimitRPS > 0 {
		router.Use(middleware.NewHTTPRateLimitPerIP(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, ratelimit.DefaultCacheSize, time.Hour))
	}
	router.Use(cors.New(corsConfig(cfg)))

	router.NoRoute(func(c *gin.Context) {
		response.Abort(c, http.StatusNotFound, response.CodeNotFound, "route not found", nil)
	})

	router.GET("/health", h.Health)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.POST("/register", h.Register)
	router.POST("/login", h.Login)

	var authOpts []middleware.AuthOption
	if m != nil {
		authOpts = append(authOpts, middleware.OnReject(m.AuthFailure))
	}
	protected := router.Group("/", middleware.Auth(verifier, checker, log, authOpts...))
	{
		protected.GET("/profile", h.Profile)

		protected.POST("/incomes", h.AddIncome)
		protected.GET("/incomes", h.ListIncomes)
		protected.GET("/incomes/:id", h.FindIncome)

		protected.POST("/outcomes", h.AddOutcome)
		protected.GET("/outcomes", h.ListOutcomes)
		protected.GET("/outcomes/:id", h.FindOutcome)
	}

	return router
}

func corsConfig(cfg RouterConfig) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization", middleware.TokenHeader,
			"X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}
