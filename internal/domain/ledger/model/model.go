package model

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindOutcome Kind = "outcome"
)

// Title is used in operation names, e.g. "Income".
func (k Kind) Title() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindOutcome:
		return "Outcome"
	}
	return string(k)
}

type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Kind        Kind
	Value       int64
	Description string
	CreatedAt   time.Time
}
