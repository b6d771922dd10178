// Package parser defines the contract for bank statement parsers.
//
// A parser turns raw file bytes into an ordered sequence of entries. It
// never touches persistent state: entries that cannot be read are dropped
// with a warning, a structurally broken file is a fatal error.
package parser

import (
	"errors"
	"time"

	"github.com/fundward/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Entry is one raw statement line: the minimal data needed to build a
// transaction. Amount is signed as found in the file. Type is empty when
// the format carries no explicit credit/debit indicator.
type Entry struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        models.TransactionType
}

// Parser reads a complete statement file.
//
// Row-level problems are reported as warnings and parsing continues.
// A file that cannot be read at all returns an error wrapping ErrParse.
type Parser interface {
	Parse(data []byte) ([]Entry, []string, error)
}

var (
	// ErrParse means the file is structurally unreadable.
	ErrParse = errors.New("the file could not be parsed")

	// ErrColumnMapping means the column mapping for a generic CSV import
	// is missing or does not match the file header.
	ErrColumnMapping = errors.New("the column mapping is not usable for this file")
)
