package service

import (
	"context"
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	repo "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubjectGuard confirms that a token subject still refers to a stored user.
// Positive answers are cached for ttl; a nil cache disables caching.
type SubjectGuard struct {
	users  repo.UserRepo
	cache  repo.SubjectCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewSubjectGuard(users repo.UserRepo, cache repo.SubjectCache, ttl time.Duration, logger *zap.Logger) *SubjectGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectGuard{users: users, cache: cache, ttl: ttl, logger: logger}
}

func (g *SubjectGuard) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if g.cache != nil {
		known, err := g.cache.IsKnown(ctx, id)
		if err == nil && known {
			return true, nil
		}
		if err != nil {
			// cache trouble falls through to the store
			g.logger.Warn("subject cache lookup failed", zap.Error(err))
		}
	}

	_, err := g.users.GetUserByID(ctx, id)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return false, nil
	case err != nil:
		return false, customErrors.WrapInternal(err, "SubjectGuard")
	}

	if g.cache != nil && g.ttl > 0 {
		if err := g.cache.Remember(ctx, id, g.ttl); err != nil {
			g.logger.Warn("subject cache store failed", zap.Error(err))
		}
	}
	return true, nil
}
