// Package core holds the ledger's domain model: accounts, categories,
// operations, and the helpers that construct and validate them.
//
// Amounts are fixed-point decimals rounded to two places. ParseAmount is
// the validation boundary for user input: the services themselves accept
// whatever amount they are handed, so every collaborator that parses text
// must go through it.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to a positive two-place amount.
//
// It accepts both dot (12.34) and comma (12,34) separators and performs
// half-up rounding on the third decimal place. Zero, negative, signed and
// malformed inputs are rejected with ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
