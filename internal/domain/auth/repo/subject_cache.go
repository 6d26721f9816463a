package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SubjectCache interface {
	Remember(ctx context.Context, id uuid.UUID, ttl time.Duration) error

	IsKnown(ctx context.Context, id uuid.UUID) (bool, error)
}
