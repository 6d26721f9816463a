package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"time"
)

type AccessClaims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c AccessClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type JWTUtil interface {
	GenerateAccessToken(userID uuid.UUID) (token string, exp time.Time, err error)
	ValidateAccessToken(token string) (claims AccessClaims, err error)
}
