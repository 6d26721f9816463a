package repo

import (
	"context"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/model"
	"github.com/google/uuid"
)

// UserRepo is the credential store. Implementations enforce email uniqueness
// and report it as errors.ErrAlreadyExists; lookups miss with errors.ErrNotFound.
type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
}
