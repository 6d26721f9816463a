package http

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/response"
	authsvc "github.com/Miraines/MoonyAndStarry/finance-service/internal/app/auth/service"
	ledgersvc "github.com/Miraines/MoonyAndStarry/finance-service/internal/app/ledger/service"
	authErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/health"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	auth    authsvc.Service
	ledger  ledgersvc.Service
	health  *health.Checker
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewHandler(
	auth authsvc.Service,
	ledger ledgersvc.Service,
	checker *health.Checker,
	m *metrics.Metrics,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{auth: auth, ledger: ledger, health: checker, metrics: m, log: log}
}

func (h *Handler) Register(c *gin.Context) {
	var in dto.RegisterDTO
	if !h.bind(c, &in) {
		return
	}

	h.log.Info("/register", zap.String("user", emailDigest(in.Email)))

	res, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("user registered", zap.String("user_id", res.User.ID.String()))
	c.JSON(http.StatusOK, dto.NewAuthResponse(res))
}

func (h *Handler) Login(c *gin.Context) {
	var in dto.LoginDTO
	if !h.bind(c, &in) {
		return
	}

	h.log.Info("/login", zap.String("user", emailDigest(in.Email)))

	res, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		if authErrors.IsInvalidCredentials(err) && h.metrics != nil {
			h.metrics.AuthFailure(response.CodeInvalidCredentials)
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthResponse(res))
}

func (h *Handler) Profile(c *gin.Context) {
	userID, ok := h.subject(c)
	if !ok {
		return
	}
	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}

func (h *Handler) AddIncome(c *gin.Context) {
	userID, ok := h.subject(c)
	if !ok {
		return
	}
	var in dto.IncomeDTO
	if !h.bind(c, &in) {
		return
	}

	t, err := h.ledger.AddIncome(c.Request.Context(), userID, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(string(t.Kind))
	c.JSON(http.StatusOK, gin.H{"income": dto.NewTransactionResponse(t)})
}

func (h *Handler) ListIncomes(c *gin.Context) {
	userID, ok := h.subject(c)
	if !ok {
		return
	}
	ts, err := h.ledger.ListIncomes(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"incomes": dto.NewTransactionList(ts)})
}

func (h *Handler) FindIncome(c *gin.Context) {
	userID, ok := h.subject(c)
	if !ok {
		return
	}
	t, err := h.ledger.FindIncome(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"income": dto.NewTransactionResponse(t)})
}

func (h *Handler) AddOutcome(c *gin.Context) {
	userID, ok := h.subject(c)
	if !ok {
		return
	}
	var in dto.OutcomeDTO
	if !h.bind(c, &in) {
		return
	}

	t, err := h.ledger.AddOutcome(c.Request.Context(), userID, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(string(t.Kind))
	c.JSON(http.StatusOK, gin.H{"outcome": dto.NewTransactionResponse(t)})
}

func (h *Handler) ListOutcomes(c *gin.Context) {
	userID, ok := h.subject(c)
	if !ok {
		return
	}
	ts, err := h.ledger.ListOutcomes(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcomes": dto.NewTransactionList(ts)})
}

func (h *Handler) FindOutcome(c *gin.Context) {
	userID, ok := h.subject(c)
	if !ok {
		return
	}
	t, err := h.ledger.FindOutcome(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": dto.NewTransactionResponse(t)})
}

func (h *Handler) Health(c *gin.Context) {
	if h.health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	failures := h.health.Run(c.Request.Context())
	if len(failures) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	down := make([]string, 0, len(failures))
	for name, err := range failures {
		h.log.Warn("health probe failed", zap.String("probe", name), zap.Error(err))
		down = append(down, name)
	}
	sort.Strings(down)
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "failing": down})
}

func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		msg := "malformed JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		response.Abort(c, http.StatusBadRequest, response.CodeBadRequest, msg, nil)
		return false
	}
	return true
}

func (h *Handler) subject(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication token is required", nil)
	}
	return id, ok
}

func (h *Handler) fail(c *gin.Context, err error) {
	response.FromError(c, h.log, err)
}

// Emails only reach the logs hashed.
func emailDigest(email string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email)))))
}

func (h *Handler) created(kind string) {
	if h.metrics != nil {
		h.metrics.TransactionCreated(kind)
	}
}
