package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fund is the envelope for a fund-managed category: a running balance of
// the money earmarked for that category.
//
// Funds are created lazily on the first credit or debit. The balance is
// only ever changed through AddToFund and SubtractFromFund, which issue a
// single relative UPDATE so that concurrent batches cannot lose updates.
type Fund struct {
	DefaultModel
	Owner          User            `gorm:"constraint:OnDelete:CASCADE"`
	OwnerID        uuid.UUID       `gorm:"uniqueIndex:fund_owner_category"`
	Category       Category        `gorm:"constraint:OnDelete:CASCADE"`
	CategoryID     uuid.UUID       `gorm:"uniqueIndex:fund_owner_category"`
	CurrentBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var ErrFundExists = errors.New("a fund for this category already exists")

// AddToFund credits the fund for the category, creating it if needed.
func AddToFund(db *gorm.DB, ownerID, categoryID uuid.UUID, amount decimal.Decimal) error {
	return updateFundBalance(db, ownerID, categoryID, amount)
}

// SubtractFromFund debits the fund for the category, creating it if needed.
func SubtractFromFund(db *gorm.DB, ownerID, categoryID uuid.UUID, amount decimal.Decimal) error {
	return updateFundBalance(db, ownerID, categoryID, amount.Neg())
}

func updateFundBalance(db *gorm.DB, ownerID, categoryID uuid.UUID, delta decimal.Decimal) error {
	fund, err := fundFor(db, ownerID, categoryID)
	if err != nil {
		return err
	}

	// Relative update so that the read-modify-write happens in the
	// database, not in the application
	return db.Model(&fund).
		Update("current_balance", gorm.Expr("current_balance + ?", delta)).
		Error
}

// fundFor returns the fund for the category, creating it with a zero
// balance if it does not exist yet.
func fundFor(db *gorm.DB, ownerID, categoryID uuid.UUID) (Fund, error) {
	var fund Fund

	err := db.Where(&Fund{OwnerID: ownerID, CategoryID: categoryID}).First(&fund).Error
	if err == nil {
		return fund, nil
	}

	if !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Fund{}, err
	}

	fund = Fund{OwnerID: ownerID, CategoryID: categoryID, CurrentBalance: decimal.Zero}
	err = db.Create(&fund).Error
	if err != nil {
		return Fund{}, err
	}

	return fund, nil
}
