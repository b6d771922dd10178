package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType defines the direction of a transaction.
type TransactionType string

const (
	TransactionIn       TransactionType = "IN"
	TransactionOut      TransactionType = "OUT"
	TransactionTransfer TransactionType = "TRF"
)

// Transaction represents a single booking on an account.
//
// The stored amount is signed: expenses are negative, income is positive.
// This convention is enforced on every write, see BeforeSave.
type Transaction struct {
	DefaultModel
	Owner       User      `gorm:"constraint:OnDelete:CASCADE"`
	OwnerID     uuid.UUID `gorm:"index"`
	Account     Account   `gorm:"constraint:OnDelete:CASCADE"`
	AccountID   uuid.UUID `gorm:"index"`
	Date        time.Time
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type        TransactionType
	CategoryID  *uuid.UUID
	Category    *Category
	Tags        []Tag `gorm:"many2many:transaction_tags;constraint:OnDelete:CASCADE"`
}

var ErrTransactionTypeInvalid = errors.New("the transaction type is invalid")

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave normalizes the transaction:
//   - the description is trimmed
//   - the date is truncated to the day, in UTC
//   - the sign of the amount is forced to match the type: OUT stores
//     amounts <= 0, IN stores amounts >= 0, TRF keeps the amount as given
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	}
	t.Date = t.Date.In(time.UTC)
	t.Date = time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)

	if t.Type == "" {
		t.Type = TransactionOut
	}

	switch t.Type {
	case TransactionOut:
		t.Amount = t.Amount.Abs().Neg()
	case TransactionIn:
		t.Amount = t.Amount.Abs()
	case TransactionTransfer:
	default:
		return ErrTransactionTypeInvalid
	}

	// Normalize the "no category" representation
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	return tx.First(&Account{}, t.AccountID).Error
}
