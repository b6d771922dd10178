package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation records how one income transaction was fanned out into fund
// credits. A transaction has at most one allocation and an allocation is
// immutable once created.
type Allocation struct {
	DefaultModel
	Owner                User            `gorm:"constraint:OnDelete:CASCADE"`
	OwnerID              uuid.UUID       `gorm:"index"`
	Transaction          Transaction     `gorm:"constraint:OnDelete:CASCADE"`
	TransactionID        uuid.UUID       `gorm:"uniqueIndex"`
	TotalAllocatedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note                 string
	Lines                []AllocationLine `gorm:"constraint:OnDelete:CASCADE"`
}

// AllocationLine credits one fund-managed category with part of the
// allocated income.
type AllocationLine struct {
	DefaultModel
	AllocationID uuid.UUID       `gorm:"uniqueIndex:allocation_line_category"`
	Category     Category        `gorm:"constraint:OnDelete:CASCADE"`
	CategoryID   uuid.UUID       `gorm:"uniqueIndex:allocation_line_category"`
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note         string
}
