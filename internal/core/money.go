// Package core holds the domain model of the tracker: expenses, users,
// money parsing and the pure analytics rollups.
//
// This file contains amount parsing and formatting. Amounts are kept as
// integer cents everywhere; floats appear only at display boundaries.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a currency amount in integer cents. Expense amounts are always
// positive; a user's balance is the same type and may be negative.
type Money struct {
	Cents int64 `json:"cents"`
}

// ParseAmount converts a decimal string to Money with half-up rounding on
// the third decimal place. Both dot and comma separators are accepted.
// Only strictly positive amounts parse; sign prefixes are rejected.
func ParseAmount(s string) (Money, error) {
	cents, err := parseDecimalToCents(s, false)
	if err != nil {
		return Money{}, err
	}
	if cents <= 0 {
		return Money{}, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return Money{Cents: cents}, nil
}

// ParseSignedAmount parses a decimal string that may carry a leading minus,
// used for direct balance overrides where any value is legal.
func ParseSignedAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg || strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	cents, err := parseDecimalToCents(s, true)
	if err != nil {
		return Money{}, err
	}
	if neg {
		cents = -cents
	}
	return Money{Cents: cents}, nil
}

func parseDecimalToCents(s string, allowZero bool) (int64, error) {
	invalid := &ValidationError{Field: "amount", Reason: "must be a decimal number"}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid
	}
	// Normalize decimal comma to dot.
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, invalid
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, invalid
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, invalid
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, invalid
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, invalid
	}

	// First two fractional digits are cents; the third rounds half-up.
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	cents := iv*100 + frac
	if cents == 0 && !allowZero {
		return 0, invalid
	}
	return cents, nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// String formats the amount as a plain decimal with two places, e.g. "12.34".
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
