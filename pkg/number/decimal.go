package number

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ErrNotPositive amount is zero or negative
var ErrNotPositive = errors.New("amount must be positive")

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Parse parse a decimal from a string or number value
func Parse(v interface{}) (decimal.Decimal, error) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, nil
	case *decimal.Decimal:
		if d == nil {
			return decimal.Zero, errors.New("nil decimal")
		}
		return *d, nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero, err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d, nil
}

// Positive parse an amount and require it to be > 0
func Positive(v interface{}) (decimal.Decimal, error) {
	d, err := Parse(v)
	if err != nil {
		return d, err
	}

	if !d.IsPositive() {
		return d, ErrNotPositive
	}

	return d, nil
}
