// Package mt940 parses SWIFT MT940 customer statement messages.
//
// Only the fields needed for booking ingestion are interpreted, :61:
// statement lines and their :86: information fields. Everything else
// (balances, account identification, statement numbers) is skipped.
package mt940

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundward/backend/internal/importer/parser"
	"github.com/fundward/backend/internal/importer/parser/helpers"
	"github.com/fundward/backend/internal/models"
)

// Bank-specific boilerplate around the actual booking text. Prefixes are
// stripped from the start, suffix markers cut the text at the reference
// number the bank appends.
var (
	descriptionPrefixes = []string{
		"Achat ",
		"Paiement ",
		"Crédit ",
		"E-banking Ordre à ",
		"Transfert TWINT à ",
	}

	descriptionSuffixMarkers = []string{
		" No TWINT",
		" No carte",
	}
)

const placeholderDescription = "description not found"

type field struct {
	tag   string
	value string
	line  int
}

type Parser struct{}

func New() Parser {
	return Parser{}
}

func (Parser) Parse(data []byte) ([]parser.Entry, []string, error) {
	fields := tokenize(helpers.DecodeText(data))

	var entries []parser.Entry
	var warnings []string

	seenStatement := false

	for i := 0; i < len(fields); i++ {
		f := fields[i]

		switch {
		case f.tag == "20":
			seenStatement = true

		case f.tag == "61":
			date, amount, entryType, err := parseStatementLine(f.value)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("line %d: %v", f.line, err))
				continue
			}

			description := ""
			if i+1 < len(fields) && fields[i+1].tag == "86" {
				description = cleanDescription(fields[i+1].value)
				i++
			}

			// Booking without an information field, or the stripping
			// consumed the whole text
			if description == "" {
				description = placeholderDescription
			}

			entries = append(entries, parser.Entry{
				Date:        date,
				Description: description,
				Amount:      amount,
				Type:        entryType,
			})
		}
	}

	if !seenStatement {
		return nil, nil, fmt.Errorf("%w: no MT940 statement found", parser.ErrParse)
	}

	return entries, warnings, nil
}

// tokenize splits the message into tagged fields. A field starts with
// ":NN:" or ":NNA:" at the beginning of a line and extends over the
// following lines until the next tag or the "-" end-of-message marker.
func tokenize(text string) []field {
	var fields []field

	for i, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimRight(line, "\r")

		if line == "-" {
			continue
		}

		if tag, value, ok := splitTag(line); ok {
			fields = append(fields, field{tag: tag, value: value, line: i + 1})
			continue
		}

		// Continuation line of the previous field
		if len(fields) > 0 && strings.TrimSpace(line) != "" {
			last := &fields[len(fields)-1]
			last.value += " " + strings.TrimSpace(line)
		}
	}

	return fields
}

func splitTag(line string) (tag string, value string, ok bool) {
	if !strings.HasPrefix(line, ":") {
		return "", "", false
	}

	end := strings.Index(line[1:], ":")
	if end < 1 {
		return "", "", false
	}

	tag = line[1 : end+1]
	for _, r := range tag {
		if (r < '0' || r > '9') && (r < 'A' || r > 'Z') {
			return "", "", false
		}
	}

	// Qualifier letters like "NS" or "61F" are reduced to the digits so
	// callers can match on the field number alone
	tag = strings.TrimRight(tag, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	if tag == "" {
		return "", "", false
	}

	return tag, strings.TrimSpace(line[end+2:]), true
}

// parseStatementLine interprets a :61: value:
//
//	YYMMDD[MMDD](C|D|RC|RD|EC|ED)amount N...
//
// The optional second date is the entry date and is ignored, the value
// date determines the booking day. Reversal marks flip the direction.
func parseStatementLine(value string) (time.Time, decimal.Decimal, models.TransactionType, error) {
	if len(value) < 10 {
		return time.Time{}, decimal.Decimal{}, "", fmt.Errorf("statement line %q is too short", value)
	}

	date, err := time.Parse("060102", value[:6])
	if err != nil {
		return time.Time{}, decimal.Decimal{}, "", fmt.Errorf("invalid value date in %q", value)
	}

	rest := value[6:]

	// Skip the optional MMDD entry date
	if len(rest) >= 4 && isDigits(rest[:4]) {
		rest = rest[4:]
	}

	if rest == "" {
		return time.Time{}, decimal.Decimal{}, "", fmt.Errorf("missing debit/credit mark in %q", value)
	}

	reversal := false
	if rest[0] == 'R' || rest[0] == 'E' {
		reversal = rest[0] == 'R'
		rest = rest[1:]
	}

	if rest == "" || (rest[0] != 'C' && rest[0] != 'D') {
		return time.Time{}, decimal.Decimal{}, "", fmt.Errorf("missing debit/credit mark in %q", value)
	}

	entryType := models.TransactionOut
	if (rest[0] == 'C') != reversal {
		entryType = models.TransactionIn
	}
	rest = rest[1:]

	// An optional funds code letter may sit between the mark and the
	// amount
	if rest != "" && !isDigit(rest[0]) {
		rest = rest[1:]
	}

	end := 0
	for end < len(rest) && (isDigit(rest[end]) || rest[end] == ',' || rest[end] == '.') {
		end++
	}

	if end == 0 {
		return time.Time{}, decimal.Decimal{}, "", fmt.Errorf("missing amount in %q", value)
	}

	amount, err := helpers.ParseAmount(rest[:end])
	if err != nil {
		return time.Time{}, decimal.Decimal{}, "", fmt.Errorf("invalid amount %q", rest[:end])
	}

	return date, amount.Abs(), entryType, nil
}

// cleanDescription strips the bank's boilerplate from a :86: information
// field so the remaining text is usable for matching and categorization.
func cleanDescription(value string) string {
	description := strings.TrimSpace(value)

	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(description, prefix) {
			description = strings.TrimSpace(strings.TrimPrefix(description, prefix))
			break
		}
	}

	for _, marker := range descriptionSuffixMarkers {
		if idx := strings.Index(description, marker); idx > 0 {
			description = strings.TrimSpace(description[:idx])
			break
		}
	}

	return description
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return len(s) > 0
}
