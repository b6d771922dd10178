package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountKind defines the nature of an account.
type AccountKind string

const (
	AccountKindIndividual AccountKind = "INDIVIDUAL"
	AccountKindShared     AccountKind = "SHARED"
	AccountKindSavings    AccountKind = "SAVINGS"
	AccountKindCredit     AccountKind = "CREDIT"
)

// Account represents a bank account or another source of funds.
type Account struct {
	DefaultModel
	Owner          User      `gorm:"constraint:OnDelete:CASCADE"`
	OwnerID        uuid.UUID `gorm:"uniqueIndex:account_owner_name"`
	Name           string    `gorm:"uniqueIndex:account_owner_name"`
	Currency       string
	Kind           AccountKind
	InitialBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrAccountNameNotUnique = errors.New("the account name must be unique for the owner")
	ErrAccountKindInvalid   = errors.New("the account kind is invalid")
)

// BeforeSave trims whitespace and defaults the currency and kind.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Currency = strings.ToUpper(strings.TrimSpace(a.Currency))

	if a.Currency == "" {
		a.Currency = "CHF"
	}

	if a.Kind == "" {
		a.Kind = AccountKindIndividual
	}

	switch a.Kind {
	case AccountKindIndividual, AccountKindShared, AccountKindSavings, AccountKindCredit:
	default:
		return ErrAccountKindInvalid
	}

	return nil
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	return a.checkIntegrity(tx)
}

// BeforeUpdate verifies the state of the account before
// committing an update to the database.
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("OwnerID") {
		return a.checkIntegrity(tx)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (a *Account) checkIntegrity(tx *gorm.DB) error {
	return tx.First(&User{}, a.OwnerID).Error
}

// Transactions returns all transactions for this account.
func (a Account) Transactions(db *gorm.DB) []Transaction {
	var transactions []Transaction

	db.Where(&Transaction{AccountID: a.ID}).Find(&transactions)
	return transactions
}
