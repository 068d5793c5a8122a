package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney parses a non-negative decimal amount from form input.
func ParseMoney(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Field: field, Value: raw, Reason: "not a number"}
	}
	if d.IsNegative() {
		return decimal.Decimal{}, &ValidationError{Field: field, Value: raw, Reason: "must not be negative"}
	}
	return d, nil
}

// ParseCount parses a non-negative integer (stock levels).
func ParseCount(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "not a whole number"}
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "must not be negative"}
	}
	return n, nil
}

// ParseQuantity parses an order quantity, which must be at least 1.
func ParseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: "quantity", Value: raw, Reason: "not a whole number"}
	}
	if n < 1 {
		return 0, &ValidationError{Field: "quantity", Value: raw, Reason: "must be at least 1"}
	}
	return n, nil
}
