package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (uuid.UUID, error) {
	rec := newUserRecord(user)
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isDuplicate(err) {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
		return uuid.Nil, customErrors.WrapInternal(err, "CreateUser")
	}
	return rec.ID, nil
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return p.first(ctx, "GetUserByEmail", "email = ?", email)
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return p.first(ctx, "GetUserByID", "id = ?", id)
}

func (p *PostgresUserRepo) first(ctx context.Context, op, query string, arg any) (model.User, error) {
	var rec userRecord
	res := p.db.WithContext(ctx).Where(query, arg).First(&rec)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, op)
	}
	return rec.model(), nil
}
