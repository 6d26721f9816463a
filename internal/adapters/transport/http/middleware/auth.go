package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/response"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// UserIDKey holds the authenticated uuid.UUID in the gin context.
	UserIDKey   = "userID"
	TokenHeader = "x-auth-token"
)

type subjectKey struct{}

type TokenVerifier interface {
	ValidateAccessToken(token string) (jwt.AccessClaims, error)
}

// SubjectChecker reports whether a verified subject still exists.
type SubjectChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type authOptions struct {
	onReject func(code string)
}

type AuthOption func(*authOptions)

// OnReject is called with the error code of every rejected request.
func OnReject(fn func(code string)) AuthOption {
	return func(o *authOptions) { o.onReject = fn }
}

// Auth rejects requests without a valid token. checker may be nil.
func Auth(verifier TokenVerifier, checker SubjectChecker, log *zap.Logger, opts ...AuthOption) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	o := authOptions{onReject: func(string) {}}
	for _, opt := range opts {
		opt(&o)
	}
	reject := func(c *gin.Context, code, msg string) {
		o.onReject(code)
		response.Abort(c, http.StatusUnauthorized, code, msg, nil)
	}

	return func(c *gin.Context) {
		raw := ExtractToken(c.Request.Header.Get(TokenHeader), c.GetHeader("Authorization"))
		if raw == "" {
			reject(c, response.CodeUnauthorized, "authentication token is required")
			return
		}

		claims, err := verifier.ValidateAccessToken(raw)
		if err != nil {
			reject(c, response.CodeInvalidToken, "invalid token")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			reject(c, response.CodeInvalidToken, "invalid token")
			return
		}

		if checker != nil {
			ok, err := checker.Exists(c.Request.Context(), userID)
			if err != nil {
				response.FromError(c, log, err)
				return
			}
			if !ok {
				log.Debug("token subject no longer exists", zap.String("sub", userID.String()))
				reject(c, response.CodeInvalidToken, "invalid token")
				return
			}
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(WithSubject(c.Request.Context(), userID))
		c.Next()
	}
}

// ExtractToken prefers the x-auth-token value and falls back to a Bearer header.
func ExtractToken(headerToken, authorization string) string {
	if t := strings.TrimSpace(headerToken); t != "" {
		return t
	}
	const prefix = "bearer "
	if len(authorization) > len(prefix) && strings.EqualFold(authorization[:len(prefix)], prefix) {
		return strings.TrimSpace(authorization[len(prefix):])
	}
	return ""
}

// UserID returns the subject placed by Auth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func WithSubject(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, subjectKey{}, id)
}

func SubjectFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(subjectKey{}).(uuid.UUID)
	return id, ok
}
