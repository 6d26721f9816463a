package postgres

import (
	"time"

	authModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/model"
	ledgerModel "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/ledger/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:40;not null"`
	Email        string    `gorm:"size:320;not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

func newUserRecord(u authModel.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (r userRecord) model() authModel.User {
	return authModel.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

type transactionRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_owner,priority:1"`
	Kind        string    `gorm:"size:16;not null;index:idx_transactions_owner,priority:2"`
	Value       int64     `gorm:"not null"`
	Description string    `gorm:"size:200;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;index:idx_transactions_owner,priority:3"`
}

func (transactionRecord) TableName() string { return "transactions" }

func newTransactionRecord(t ledgerModel.Transaction) transactionRecord {
	return transactionRecord{
		ID:          t.ID,
		UserID:      t.UserID,
		Kind:        string(t.Kind),
		Value:       t.Value,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func (r transactionRecord) model() ledgerModel.Transaction {
	return ledgerModel.Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Kind:        ledgerModel.Kind(r.Kind),
		Value:       r.Value,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// AutoMigrate creates the tables for dialects without SQL migrations (sqlite in tests).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userRecord{}, &transactionRecord{})
}
