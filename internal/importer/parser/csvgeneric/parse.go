// Package csvgeneric parses CSV statements with a caller-supplied column
// mapping, for banks without a dedicated parser.
package csvgeneric

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

// Mapping names the columns to read. Date, Description and Amount are
// required, Type is optional. DateLayout defaults to ISO dates.
type Mapping struct {
	Date        string
	Description string
	Amount      string
	Type        string
	DateLayout  string
}

type Parser struct {
	mapping Mapping
}

func New(mapping Mapping) Parser {
	return Parser{mapping: mapping}
}

func (p Parser) Parse(data []byte) ([]parser.Entry, []string, error) {
	if p.mapping.Date == "" || p.mapping.Description == "" || p.mapping.Amount == "" {
		return nil, nil, fmt.Errorf("%w: date, description and amount columns must be mapped", parser.ErrColumnMapping)
	}

	layout := p.mapping.DateLayout
	if layout == "" {
		layout = "2006-01-02"
	}

	reader := csv.NewReader(strings.NewReader(helpers.DecodeText(data)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: the file is empty or has no header", parser.ErrParse)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, name := range []string{p.mapping.Date, p.mapping.Description, p.mapping.Amount} {
		if _, ok := columns[name]; !ok {
			return nil, nil, fmt.Errorf("%w: column %q not found in the header", parser.ErrColumnMapping, name)
		}
	}

	typeColumn, hasTypeColumn := columns[p.mapping.Type]
	if p.mapping.Type != "" && !hasTypeColumn {
		return nil, nil, fmt.Errorf("%w: column %q not found in the header", parser.ErrColumnMapping, p.mapping.Type)
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

		field := func(idx int) string {
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		dateStr := field(columns[p.mapping.Date])
		description := field(columns[p.mapping.Description])
		amountStr := field(columns[p.mapping.Amount])

		if dateStr == "" && description == "" && amountStr == "" {
			continue
		}

		if dateStr == "" || description == "" || amountStr == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: date, description or amount is missing", line))
			continue
		}

		date, err := time.Parse(layout, dateStr)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid date %q, expected layout %q", line, dateStr, layout))
			continue
		}

		amount, err := helpers.ParseAmount(amountStr)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid amount %q", line, amountStr))
			continue
		}

		entry := parser.Entry{
			Date:        date,
			Description: description,
			Amount:      amount,
		}

		// An explicit type column wins over the sign of the amount
		if hasTypeColumn {
			switch strings.ToUpper(field(typeColumn)) {
			case "IN", "INCOME", "CREDIT":
				entry.Type = models.TransactionIn
			case "OUT", "EXPENSE", "DEBIT":
				entry.Type = models.TransactionOut
			}
		}

		entries = append(entries, entry)
	}

	return entries, warnings, nil
}
