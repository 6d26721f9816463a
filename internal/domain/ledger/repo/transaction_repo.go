package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/model"
	"github.com/google/uuid"
)

// TransactionRepo stores incomes and outcomes. Reads are always scoped to the owner;
// a record owned by someone else is reported as errors.ErrNotFound.
type TransactionRepo interface {
	CreateTransaction(ctx context.Context, t model.Transaction) error

	ListTransactions(ctx context.Context, userID uuid.UUID, kind model.Kind) ([]model.Transaction, error)

	GetTransaction(ctx context.Context, userID uuid.UUID, kind model.Kind, id uuid.UUID) (model.Transaction, error)
}
