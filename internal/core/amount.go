// Package core holds the domain entities shared by the mappers, the
// aggregation engine and the write-path services.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts a raw cell value to an amount. The backing store
// enforces no types, so any cell that fails numeric parsing contributes 0
// rather than an error. A decimal comma is accepted alongside the dot.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseRequiredAmount is the strict variant used on the write path, where a
// malformed amount is a user error rather than dirty stored data.
// Negative amounts are rejected; transactions are recorded as positive sums.
func ParseRequiredAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if f < 0 {
		return 0, ErrInvalidAmount
	}
	return f, nil
}
