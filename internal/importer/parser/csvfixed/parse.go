// Package csvfixed parses semicolon-separated bank exports with separate
// debit and credit columns, as produced by Raiffeisen and similar banks.
//
// The column layout is fixed: date;description;debit;credit. A populated
// debit column makes the row an expense, a populated credit column an
// income. Rows with neither are balance lines and skipped.
package csvfixed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fundward/backend/internal/importer/parser"
	"github.com/fundward/backend/internal/importer/parser/helpers"
	"github.com/fundward/backend/internal/models"
)

const dateLayout = "02.01.2006"

const (
	columnDate = iota
	columnDescription
	columnDebit
	columnCredit
)

type Parser struct{}

func New() Parser {
	return Parser{}
}

func (Parser) Parse(data []byte) ([]parser.Entry, []string, error) {
	reader := csv.NewReader(strings.NewReader(helpers.DecodeText(data)))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	// Header row
	_, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: the file is empty or has no header", parser.ErrParse)
	}

	var entries []parser.Entry
	var warnings []string

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: could not read CSV record: %v", line, err))
			continue
		}

		if len(record) <= columnDebit {
			if strings.TrimSpace(strings.Join(record, "")) != "" {
				warnings = append(warnings, fmt.Sprintf("line %d: incomplete record", line))
			}
			continue
		}

		debit := normalizeAmountField(record[columnDebit])
		credit := ""
		if len(record) > columnCredit {
			credit = normalizeAmountField(record[columnCredit])
		}

		// Neither column populated: a balance or informational line
		if debit == "" && credit == "" {
			continue
		}

		date, err := time.Parse(dateLayout, strings.TrimSpace(record[columnDate]))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid date %q, expected layout %q", line, record[columnDate], dateLayout))
			continue
		}

		description := strings.TrimSpace(record[columnDescription])
		if description == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: description is missing", line))
			continue
		}

		amountStr := debit
		entryType := models.TransactionOut
		if credit != "" {
			amountStr = credit
			entryType = models.TransactionIn
		}

		amount, err := helpers.ParseAmount(amountStr)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid amount %q", line, amountStr))
			continue
		}

		entries = append(entries, parser.Entry{
			Date:        date,
			Description: description,
			Amount:      amount.Abs(),
			Type:        entryType,
		})
	}

	return entries, warnings, nil
}

// normalizeAmountField empties the placeholder values banks write into
// unused debit/credit columns.
func normalizeAmountField(s string) string {
	s = strings.TrimSpace(s)
	if s == "0" || s == "-" {
		return ""
	}
	return s
}
