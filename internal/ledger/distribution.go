package ledger

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fundward/backend/internal/models"
)

var (
	ErrNotIncome              = errors.New("only income transactions can be allocated to funds")
	ErrNotExpense             = errors.New("only expense transactions can debit funds")
	ErrNoLines                = errors.New("at least one line is required")
	ErrLineAmountNotPositive  = errors.New("line amounts must be positive")
	ErrCategoryNotFundManaged = errors.New("the category is not fund-managed")
	ErrCrossOwnerCategory     = errors.New("the category belongs to a different owner")
	ErrOverAllocation         = errors.New("the line amounts exceed the transaction amount")
	ErrAlreadyProcessed       = errors.New("the transaction already has a fund distribution")
)

// tolerance absorbs rounding differences from statements that were
// entered by hand.
var tolerance = decimal.RequireFromString("0.01")

// Line is one target of an allocation or fund debit: a fund-managed
// category and the positive amount going to or coming from its fund.
type Line struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Note       string
}

// Allocate fans an income transaction out into fund credits. The lines
// must reference fund-managed categories of the transaction's owner and
// may sum up to at most the transaction amount. A transaction can be
// allocated once.
func Allocate(db *gorm.DB, t models.Transaction, lines []Line, note string) (models.Allocation, error) {
	if t.Type != models.TransactionIn {
		return models.Allocation{}, ErrNotIncome
	}

	total, err := validateLines(db, t, lines)
	if err != nil {
		return models.Allocation{}, err
	}

	if err := ensureUnprocessed(db, t); err != nil {
		return models.Allocation{}, err
	}

	allocation := models.Allocation{
		OwnerID:              t.OwnerID,
		TransactionID:        t.ID,
		TotalAllocatedAmount: total,
		Note:                 note,
	}

	for _, line := range lines {
		allocation.Lines = append(allocation.Lines, models.AllocationLine{
			CategoryID: line.CategoryID,
			Amount:     line.Amount,
			Note:       line.Note,
		})
	}

	if err := db.Create(&allocation).Error; err != nil {
		return models.Allocation{}, err
	}

	for _, line := range lines {
		if err := models.AddToFund(db, t.OwnerID, line.CategoryID, line.Amount); err != nil {
			return models.Allocation{}, err
		}
	}

	return allocation, nil
}

// Debit fans an expense transaction out into fund debits. The counterpart
// of Allocate with the same validation rules.
func Debit(db *gorm.DB, t models.Transaction, lines []Line, note string) (models.FundDebitRecord, error) {
	if t.Type != models.TransactionOut {
		return models.FundDebitRecord{}, ErrNotExpense
	}

	total, err := validateLines(db, t, lines)
	if err != nil {
		return models.FundDebitRecord{}, err
	}

	if err := ensureUnprocessed(db, t); err != nil {
		return models.FundDebitRecord{}, err
	}

	record := models.FundDebitRecord{
		OwnerID:            t.OwnerID,
		TransactionID:      t.ID,
		TotalDebitedAmount: total,
		Note:               note,
	}

	for _, line := range lines {
		record.Lines = append(record.Lines, models.FundDebitLine{
			CategoryID: line.CategoryID,
			Amount:     line.Amount,
			Note:       line.Note,
		})
	}

	if err := db.Create(&record).Error; err != nil {
		return models.FundDebitRecord{}, err
	}

	for _, line := range lines {
		if err := models.SubtractFromFund(db, t.OwnerID, line.CategoryID, line.Amount); err != nil {
			return models.FundDebitRecord{}, err
		}
	}

	return record, nil
}

// validateLines checks every line against the transaction and returns the
// total of the line amounts.
func validateLines(db *gorm.DB, t models.Transaction, lines []Line) (decimal.Decimal, error) {
	if len(lines) == 0 {
		return decimal.Zero, ErrNoLines
	}

	total := decimal.Zero

	for _, line := range lines {
		if !line.Amount.IsPositive() {
			return decimal.Zero, ErrLineAmountNotPositive
		}

		var category models.Category
		if err := db.First(&category, line.CategoryID).Error; err != nil {
			return decimal.Zero, err
		}

		if category.OwnerID != t.OwnerID {
			return decimal.Zero, ErrCrossOwnerCategory
		}

		if !category.IsFundManaged {
			return decimal.Zero, ErrCategoryNotFundManaged
		}

		total = total.Add(line.Amount)
	}

	if total.GreaterThan(t.Amount.Abs().Add(tolerance)) {
		return decimal.Zero, ErrOverAllocation
	}

	return total, nil
}

// ensureUnprocessed rejects transactions that already have an allocation
// or a fund debit record.
func ensureUnprocessed(db *gorm.DB, t models.Transaction) error {
	var count int64
	err := db.Model(&models.Allocation{}).Where("transaction_id = ?", t.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrAlreadyProcessed
	}

	err = db.Model(&models.FundDebitRecord{}).Where("transaction_id = ?", t.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrAlreadyProcessed
	}

	return nil
}

func notFound(err error) bool {
	return errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
