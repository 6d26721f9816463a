package service

import (
	"context"
	"strings"
	"time"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/model"
	repo "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/repo"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/infra/validation"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	// Incomes up to this value are booked with smallIncomeFee taken off.
	smallIncomeLimit = 50000
	smallIncomeFee   = 1000
)

type Service interface {
	AddIncome(ctx context.Context, userID uuid.UUID, in dto.IncomeDTO) (model.Transaction, error)
	ListIncomes(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
	FindIncome(ctx context.Context, userID uuid.UUID, id string) (model.Transaction, error)

	AddOutcome(ctx context.Context, userID uuid.UUID, in dto.OutcomeDTO) (model.Transaction, error)
	ListOutcomes(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
	FindOutcome(ctx context.Context, userID uuid.UUID, id string) (model.Transaction, error)
}

type ledgerService struct {
	repo repo.TransactionRepo
	v    *validator.Validate
	now  func() time.Time
}

func New(r repo.TransactionRepo, v *validator.Validate) Service {
	return &ledgerService{repo: r, v: v, now: time.Now}
}

func (s *ledgerService) AddIncome(ctx context.Context, userID uuid.UUID, in dto.IncomeDTO) (model.Transaction, error) {
	if err := validation.Struct(s.v, in); err != nil {
		return model.Transaction{}, err
	}
	return s.add(ctx, userID, model.KindIncome, AdjustIncome(in.Value), in.Description)
}

func (s *ledgerService) AddOutcome(ctx context.Context, userID uuid.UUID, in dto.OutcomeDTO) (model.Transaction, error) {
	if err := validation.Struct(s.v, in); err != nil {
		return model.Transaction{}, err
	}
	return s.add(ctx, userID, model.KindOutcome, in.Value, in.Description)
}

func (s *ledgerService) ListIncomes(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	return s.list(ctx, userID, model.KindIncome)
}

func (s *ledgerService) ListOutcomes(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	return s.list(ctx, userID, model.KindOutcome)
}

func (s *ledgerService) FindIncome(ctx context.Context, userID uuid.UUID, id string) (model.Transaction, error) {
	return s.find(ctx, userID, model.KindIncome, id)
}

func (s *ledgerService) FindOutcome(ctx context.Context, userID uuid.UUID, id string) (model.Transaction, error) {
	return s.find(ctx, userID, model.KindOutcome, id)
}

// AdjustIncome applies the booking rule for small incomes.
func AdjustIncome(value int64) int64 {
	if value <= smallIncomeLimit {
		return value - smallIncomeFee
	}
	return value
}

func (s *ledgerService) add(ctx context.Context, userID uuid.UUID, kind model.Kind, value int64, description string) (model.Transaction, error) {
	t := model.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		Value:       value,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return model.Transaction{}, customErrors.WrapInternal(err, "Add"+kind.Title())
	}
	return t, nil
}

func (s *ledgerService) list(ctx context.Context, userID uuid.UUID, kind model.Kind) ([]model.Transaction, error) {
	ts, err := s.repo.ListTransactions(ctx, userID, kind)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "List"+kind.Title()+"s")
	}
	return ts, nil
}

func (s *ledgerService) find(ctx context.Context, userID uuid.UUID, kind model.Kind, rawID string) (model.Transaction, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return model.Transaction{}, customErrors.NewValidation([]customErrors.FieldError{
			{Param: "id", Msg: "invalid id", Location: "params"},
		})
	}

	t, err := s.repo.GetTransaction(ctx, userID, kind, id)
	switch {
	case customErrors.IsNotFound(err):
		return model.Transaction{}, customErrors.ErrNotFound
	case err != nil:
		return model.Transaction{}, customErrors.WrapInternal(err, "Find"+kind.Title())
	}
	return t, nil
}
