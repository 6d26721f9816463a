package jwt

import (
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	jwt2 "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const leeway = 30 * time.Second

type JwtUtilImpl struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
	audience  string
	now       func() time.Time
}

type Option func(*JwtUtilImpl)

// WithClock replaces time.Now for both signing and validation.
func WithClock(now func() time.Time) Option {
	return func(j *JwtUtilImpl) { j.now = now }
}

func NewJWTUtil(cfg *config.Config, opts ...Option) (*JwtUtilImpl, error) {
	if cfg == nil || cfg.JWTSecret == "" {
		return nil, customErrors.WrapInternal(errors.New("empty signing secret"), "NewJWTUtil")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, customErrors.WrapInternal(errors.New("non-positive token ttl"), "NewJWTUtil")
	}

	j := &JwtUtilImpl{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: cfg.AccessTokenTTL,
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

func (j *JwtUtilImpl) GenerateAccessToken(userID uuid.UUID) (token string, exp time.Time, err error) {
	now := j.now()

	claims := jwt2.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
			ID:        uuid.NewString(),
		},
	}
	if j.audience != "" {
		claims.Audience = jwt.ClaimStrings{j.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (j *JwtUtilImpl) ValidateAccessToken(raw string) (jwt2.AccessClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}
	if j.audience != "" {
		opts = append(opts, jwt.WithAudience(j.audience))
	}

	token, err := jwt.ParseWithClaims(raw, &jwt2.AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return j.secret, nil
	}, opts...)

	if err != nil || !token.Valid {
		return jwt2.AccessClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt2.AccessClaims)
	if !ok {
		return jwt2.AccessClaims{}, customErrors.ErrInvalidToken
	}

	if _, err := claims.UserID(); err != nil {
		return jwt2.AccessClaims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
