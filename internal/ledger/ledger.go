// Package ledger maintains the fund balances that follow from
// transactions.
//
// Every function operates on the *gorm.DB it is handed, which is expected
// to be the surrounding database transaction of the caller. The package
// never commits or rolls back itself.
package ledger

import (
	"gorm.io/gorm"

	"github.com/fundward/backend/internal/models"
)

// OnCreate applies the fund effect of a newly created transaction.
//
// A transaction affects the fund of its category when the category is
// fund-managed and the type is not a transfer. Expenses subtract their
// magnitude from the fund. Income adds to the fund only when the account
// is an individual one, money arriving on shared or savings accounts is
// not available for envelopes.
func OnCreate(db *gorm.DB, t models.Transaction) error {
	return apply(db, t, false)
}

// OnDelete reverses everything the transaction did to funds: its own
// category effect and, if the transaction was allocated or debited
// against funds, the per-line effects of that record.
func OnDelete(db *gorm.DB, t models.Transaction) error {
	if err := reverseDistribution(db, t); err != nil {
		return err
	}

	return apply(db, t, true)
}

// OnUpdate moves the fund state from the old to the new version of a
// transaction by reversing the old snapshot and applying the new one.
// Updating is therefore equivalent to deleting and recreating.
func OnUpdate(db *gorm.DB, old, updated models.Transaction) error {
	if err := apply(db, old, true); err != nil {
		return err
	}

	return apply(db, updated, false)
}

func apply(db *gorm.DB, t models.Transaction, reverse bool) error {
	if t.CategoryID == nil || t.Type == models.TransactionTransfer {
		return nil
	}

	var category models.Category
	if err := db.First(&category, *t.CategoryID).Error; err != nil {
		return err
	}

	if !category.IsFundManaged {
		return nil
	}

	magnitude := t.Amount.Abs()

	switch t.Type {
	case models.TransactionOut:
		if reverse {
			return models.AddToFund(db, t.OwnerID, category.ID, magnitude)
		}
		return models.SubtractFromFund(db, t.OwnerID, category.ID, magnitude)

	case models.TransactionIn:
		var account models.Account
		if err := db.First(&account, t.AccountID).Error; err != nil {
			return err
		}

		if account.Kind != models.AccountKindIndividual {
			return nil
		}

		if reverse {
			return models.SubtractFromFund(db, t.OwnerID, category.ID, magnitude)
		}
		return models.AddToFund(db, t.OwnerID, category.ID, magnitude)
	}

	return nil
}

// reverseDistribution undoes the per-line fund effects of an allocation
// or fund debit record attached to the transaction and removes the
// record. Missing records are fine, most transactions have none.
func reverseDistribution(db *gorm.DB, t models.Transaction) error {
	var allocation models.Allocation
	err := db.Preload("Lines").First(&allocation, "transaction_id = ?", t.ID).Error
	if err == nil {
		for _, line := range allocation.Lines {
			if err := models.SubtractFromFund(db, allocation.OwnerID, line.CategoryID, line.Amount); err != nil {
				return err
			}
		}

		if err := db.Delete(&allocation).Error; err != nil {
			return err
		}
	} else if !notFound(err) {
		return err
	}

	var debit models.FundDebitRecord
	err = db.Preload("Lines").First(&debit, "transaction_id = ?", t.ID).Error
	if err == nil {
		for _, line := range debit.Lines {
			if err := models.AddToFund(db, debit.OwnerID, line.CategoryID, line.Amount); err != nil {
				return err
			}
		}

		if err := db.Delete(&debit).Error; err != nil {
			return err
		}
	} else if !notFound(err) {
		return err
	}

	return nil
}
