package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FundDebitRecord records how one expense transaction was fanned out into
// fund debits. The counterpart of Allocation for expenses, with the same
// cardinality: at most one record per transaction, immutable once created.
type FundDebitRecord struct {
	DefaultModel
	Owner              User            `gorm:"constraint:OnDelete:CASCADE"`
	OwnerID            uuid.UUID       `gorm:"index"`
	Transaction        Transaction     `gorm:"constraint:OnDelete:CASCADE"`
	TransactionID      uuid.UUID       `gorm:"uniqueIndex"`
	TotalDebitedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note               string
	Lines              []FundDebitLine `gorm:"constraint:OnDelete:CASCADE"`
}

// FundDebitLine debits one fund-managed category with part of the expense.
type FundDebitLine struct {
	DefaultModel
	FundDebitRecordID uuid.UUID       `gorm:"uniqueIndex:fund_debit_line_category"`
	Category          Category        `gorm:"constraint:OnDelete:CASCADE"`
	CategoryID        uuid.UUID       `gorm:"uniqueIndex:fund_debit_line_category"`
	Amount            decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note              string
}
