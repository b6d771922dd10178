package importer

import (
	"errors"

	"github.com/google/uuid"

	"github.com/fundward/backend/internal/importer/parser"
	"github.com/fundward/backend/internal/importer/parser/camt053"
	"github.com/fundward/backend/internal/importer/parser/csvfixed"
	"github.com/fundward/backend/internal/importer/parser/csvgeneric"
	"github.com/fundward/backend/internal/importer/parser/mt940"
)

// Format selects the statement parser for an import.
type Format string

const (
	FormatGenericCSV Format = "generic_csv"
	FormatFixedCSV   Format = "fixed_csv"
	FormatISO20022   Format = "iso20022_xml"
	FormatMT940      Format = "swift_mt940"
)

var ErrFormatInvalid = errors.New("unknown statement format")

// Import describes one statement upload.
type Import struct {
	AccountID uuid.UUID
	OwnerID   uuid.UUID
	Format    Format

	// Mapping is only used by the generic CSV format
	Mapping csvgeneric.Mapping
}

// Result reports what an import did. Warnings carries the row-level
// problems and skipped duplicates, in file order.
type Result struct {
	Imported int
	Warnings []string
}

func parserFor(format Format, mapping csvgeneric.Mapping) (parser.Parser, error) {
	switch format {
	case FormatGenericCSV:
		return csvgeneric.New(mapping), nil
	case FormatFixedCSV:
		return csvfixed.New(), nil
	case FormatISO20022:
		return camt053.New(), nil
	case FormatMT940:
		return mt940.New(), nil
	}

	return nil, ErrFormatInvalid
}
