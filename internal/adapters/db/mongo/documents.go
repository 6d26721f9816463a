package mongo

import (
	"time"

	authModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/model"
	ledgerModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/model"
	"github.com/google/uuid"
)

// Ids are stored as canonical UUID strings so both stores share one identity format.
type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

func newUserDocument(u authModel.User) userDocument {
	return userDocument{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (d userDocument) model() (authModel.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return authModel.User{}, err
	}
	return authModel.User{
		ID:           id,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}, nil
}

type transactionDocument struct {
	ID          string    `bson:"_id"`
	User        string    `bson:"user"`
	Kind        string    `bson:"kind"`
	Value       int64     `bson:"value"`
	Description string    `bson:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

func newTransactionDocument(t ledgerModel.Transaction) transactionDocument {
	return transactionDocument{
		ID:          t.ID.String(),
		User:        t.UserID.String(),
		Kind:        string(t.Kind),
		Value:       t.Value,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func (d transactionDocument) model() (ledgerModel.Transaction, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return ledgerModel.Transaction{}, err
	}
	userID, err := uuid.Parse(d.User)
	if err != nil {
		return ledgerModel.Transaction{}, err
	}
	return ledgerModel.Transaction{
		ID:          id,
		UserID:      userID,
		Kind:        ledgerModel.Kind(d.Kind),
		Value:       d.Value,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}, nil
}
