package models

import (
	// Go Internal Packages
	"bytes"
	"errors"
	"fmt"

	// External Packages
	"github.com/shopspring/decimal"
)

// Amount is an exact decimal monetary value. Unlike decimal.Decimal it keeps
// its scale when rendered, so "1500.00" stays "1500.00" on the wire.
type Amount struct {
	decimal.Decimal
}

// Amount bounds. Together they fit the 34 significant digits of a Decimal128.
const (
	MaxAmountScale         = 18
	MaxAmountIntegerDigits = 16
	maxAmountTextLen       = 64
)

var ErrAmountOutOfRange = errors.New("amount out of range")

// ParseAmount parses s as an exact decimal, preserving the scale as written.
// Values beyond MaxAmountScale or MaxAmountIntegerDigits are rejected with
// ErrAmountOutOfRange before they are ever rendered.
func ParseAmount(s string) (Amount, error) {
	if len(s) > maxAmountTextLen {
		return Amount{}, fmt.Errorf("%w: %d characters", ErrAmountOutOfRange, len(s))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if err = checkBounds(d); err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

func checkBounds(d decimal.Decimal) error {
	exp := int64(d.Exponent())
	if exp < -MaxAmountScale {
		return fmt.Errorf("%w: scale %d exceeds %d", ErrAmountOutOfRange, -exp, MaxAmountScale)
	}
	// NumDigits + exp is the count of digits left of the decimal point.
	if int64(d.NumDigits())+exp > MaxAmountIntegerDigits {
		return fmt.Errorf("%w: more than %d integer digits", ErrAmountOutOfRange, MaxAmountIntegerDigits)
	}
	return nil
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// String renders the value in plain notation with its original scale.
func (a Amount) String() string {
	if exp := a.Exponent(); exp < 0 {
		return a.StringFixed(-exp)
	}
	return a.Decimal.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare numbers; bare numbers are read
// from their literal text, never through float64.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	parsed, err := ParseAmount(string(bytes.Trim(data, `"`)))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
