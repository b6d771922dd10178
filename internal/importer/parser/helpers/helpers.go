// Package helpers contains decoding utilities shared by all statement
// parsers.
package helpers

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// DecodeText decodes file content as UTF-8 and falls back to Latin-1 when
// the bytes are not valid UTF-8. Bank exports are frequently Latin-1.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 decoding cannot actually fail, every byte maps to a rune
		return string(data)
	}

	return string(decoded)
}

// ParseAmount parses a statement amount. The decimal comma used by many
// bank exports is normalized to a dot, thousands separators (apostrophe,
// space) are dropped.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")

	return decimal.NewFromString(s)
}
