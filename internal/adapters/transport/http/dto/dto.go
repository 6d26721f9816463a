package dto

import (
	"time"

	authModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/model"
	ledgerModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/model"
)

type RegisterDTO struct {
	Name     string `json:"name"     validate:"min=2,max=40"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type IncomeDTO struct {
	Value       int64  `json:"value"       validate:"min=5000,max=1500000"`
	Description string `json:"description" validate:"max=200"`
}

type OutcomeDTO struct {
	Value       int64  `json:"value"       validate:"min=1,max=1500000"`
	Description string `json:"description" validate:"max=200"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type TransactionResponse struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Value       int64     `json:"value"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewUserResponse(u authModel.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func NewAuthResponse(r authModel.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		User:      NewUserResponse(r.User),
	}
}

func NewTransactionResponse(t ledgerModel.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		User:        t.UserID.String(),
		Value:       t.Value,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func NewTransactionList(ts []ledgerModel.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}
