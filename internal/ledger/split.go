package ledger

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fundward/backend/internal/categorizer"
	"github.com/fundward/backend/internal/models"
)

var (
	ErrSplitTooFewLines = errors.New("a split needs at least two lines")
	ErrSplitTransfer    = errors.New("transfer transactions cannot be split")
	ErrSplitSumMismatch = errors.New("the split amounts do not add up to the original amount")
)

// SplitLine describes one replacement transaction of a split. The amount
// is a magnitude, the direction is inherited from the original.
type SplitLine struct {
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
}

// Split replaces a transaction with several smaller ones, so that one
// bank booking covering multiple purposes can be categorized per purpose.
//
// The magnitudes of the lines must add up to the magnitude of the
// original. The replacements go through the regular creation path,
// including fund effects and rule learning, and the original is reversed
// and deleted. If any step fails the caller's transaction rolls back and
// the original stays untouched.
func Split(db *gorm.DB, original models.Transaction, lines []SplitLine) ([]models.Transaction, error) {
	if original.Type == models.TransactionTransfer {
		return nil, ErrSplitTransfer
	}

	if len(lines) < 2 {
		return nil, ErrSplitTooFewLines
	}

	if err := ensureUnprocessed(db, original); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range lines {
		if !line.Amount.Abs().IsPositive() {
			return nil, ErrLineAmountNotPositive
		}
		total = total.Add(line.Amount.Abs())
	}

	if total.Sub(original.Amount.Abs()).Abs().GreaterThan(tolerance) {
		return nil, ErrSplitSumMismatch
	}

	created := make([]models.Transaction, 0, len(lines))

	for _, line := range lines {
		replacement := models.Transaction{
			OwnerID:     original.OwnerID,
			AccountID:   original.AccountID,
			Date:        original.Date,
			Description: line.Description,
			Amount:      line.Amount.Abs(),
			Type:        original.Type,
			CategoryID:  line.CategoryID,
		}

		if err := db.Create(&replacement).Error; err != nil {
			return nil, err
		}

		if err := OnCreate(db, replacement); err != nil {
			return nil, err
		}

		if err := categorizer.Learn(db, replacement); err != nil {
			return nil, err
		}

		created = append(created, replacement)
	}

	if err := OnDelete(db, original); err != nil {
		return nil, err
	}

	if err := db.Delete(&original).Error; err != nil {
		return nil, err
	}

	return created, nil
}
