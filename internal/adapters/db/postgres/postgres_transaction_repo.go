package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresTransactionRepo struct {
	db *gorm.DB
}

func NewPostgresTransactionRepo(db *gorm.DB) *PostgresTransactionRepo {
	return &PostgresTransactionRepo{db: db}
}

func (p *PostgresTransactionRepo) CreateTransaction(ctx context.Context, t model.Transaction) error {
	rec := newTransactionRecord(t)
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return customErrors.WrapInternal(err, "CreateTransaction")
	}
	return nil
}

func (p *PostgresTransactionRepo) ListTransactions(ctx context.Context, userID uuid.UUID, kind model.Kind) ([]model.Transaction, error) {
	var recs []transactionRecord
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, string(kind)).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListTransactions")
	}

	out := make([]model.Transaction, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.model())
	}
	return out, nil
}

func (p *PostgresTransactionRepo) GetTransaction(ctx context.Context, userID uuid.UUID, kind model.Kind, id uuid.UUID) (model.Transaction, error) {
	var rec transactionRecord
	res := p.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND kind = ?", id, userID, string(kind)).
		First(&rec)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Transaction{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Transaction{}, customErrors.WrapInternal(err, "GetTransaction")
	}
	return rec.model(), nil
}
