// Package importer turns uploaded bank statements into persisted
// transactions.
//
// An import is one atomic batch: every surviving entry is normalized,
// checked against already persisted transactions and created inside a
// single database transaction together with its fund effects. A failing
// write rolls the whole batch back.
package importer

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fundward/backend/internal/categorizer"
	"github.com/fundward/backend/internal/importer/parser"
	"github.com/fundward/backend/internal/ledger"
	"github.com/fundward/backend/internal/models"
)

// Run parses the uploaded statement and persists the resulting
// transactions for the account referenced by the import.
//
// Parse failures are fatal. Row-level problems and duplicates of already
// persisted transactions are reported as warnings and skipped, so
// re-importing the same file is harmless.
func Run(db *gorm.DB, data []byte, imp Import) (Result, error) {
	var account models.Account
	err := db.First(&account, "id = ? AND owner_id = ?", imp.AccountID, imp.OwnerID).Error
	if err != nil {
		return Result{}, err
	}

	p, err := parserFor(imp.Format, imp.Mapping)
	if err != nil {
		return Result{}, err
	}

	entries, warnings, err := p.Parse(data)
	if err != nil {
		return Result{}, err
	}

	// A statement without a single booking is treated like an
	// unreadable file, not an empty success
	if len(entries) == 0 {
		return Result{}, fmt.Errorf("%w: no bookings found in the statement", parser.ErrParse)
	}

	result := Result{Warnings: warnings}

	tx := db.Begin()
	if tx.Error != nil {
		return Result{}, tx.Error
	}

	for i, entry := range entries {
		transaction, warning := normalize(entry, account)
		if warning != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("entry %d: %s", i+1, warning))
			continue
		}

		duplicate, err := isDuplicate(tx, transaction)
		if err != nil {
			tx.Rollback()
			return Result{}, err
		}

		if duplicate {
			result.Warnings = append(result.Warnings, fmt.Sprintf("entry %d: duplicate of an existing transaction, skipped", i+1))
			continue
		}

		if err := tx.Create(&transaction).Error; err != nil {
			tx.Rollback()
			return Result{}, err
		}

		if err := ledger.OnCreate(tx, transaction); err != nil {
			tx.Rollback()
			return Result{}, err
		}

		if err := categorizer.Learn(tx, transaction); err != nil {
			tx.Rollback()
			return Result{}, err
		}

		result.Imported++
	}

	if err := tx.Commit().Error; err != nil {
		return Result{}, err
	}

	return result, nil
}

// normalize turns a parsed entry into a transaction for the destination
// account. An explicit type from the statement wins, otherwise the sign
// of the amount decides. The stored amount carries the sign matching the
// type.
func normalize(entry parser.Entry, account models.Account) (models.Transaction, string) {
	description := strings.TrimSpace(entry.Description)

	entryType := entry.Type
	if entryType == "" {
		switch {
		case entry.Amount.IsPositive():
			entryType = models.TransactionIn
		case entry.Amount.IsNegative():
			entryType = models.TransactionOut
		default:
			return models.Transaction{}, fmt.Sprintf("zero amount for %q, skipped", description)
		}
	}

	if entry.Amount.IsZero() {
		return models.Transaction{}, fmt.Sprintf("zero amount for %q, skipped", description)
	}

	amount := entry.Amount.Abs()
	if entryType == models.TransactionOut {
		amount = amount.Neg()
	}

	// Truncate to the day in UTC, matching what the model stores, so the
	// duplicate check compares like with like
	date := entry.Date.In(time.UTC)
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	return models.Transaction{
		OwnerID:     account.OwnerID,
		AccountID:   account.ID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        entryType,
	}, ""
}

// isDuplicate checks the exact tuple of owner, account, date, description
// and signed amount against persisted transactions. It runs inside the
// batch transaction so earlier rows of the same file are visible.
func isDuplicate(db *gorm.DB, t models.Transaction) (bool, error) {
	var count int64
	err := db.Model(&models.Transaction{}).
		Where("owner_id = ? AND account_id = ? AND date = ? AND description = ? AND amount = ?",
			t.OwnerID, t.AccountID, t.Date, t.Description, t.Amount).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
