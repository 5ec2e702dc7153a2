package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnitExp is the number of fraction digits kept for amounts (halalas per riyal).
const minorUnitExp = 2

// CurrencyCode is printed next to amounts on invoices and exports
const CurrencyCode = "SAR"

// Money is an amount of money in minor units (1/100 SAR).
// It is encoded in JSON as a decimal number with two fraction digits.
type Money int64

// maxAmountExp caps any single amount at 10^12 riyals. Together with MaxQuantity it keeps
// every derived total inside int64 minor units.
const maxAmountExp = 12

var maxAmount = decimal.New(1, maxAmountExp)

// MoneyFromDecimal converts a decimal amount in major units to Money,
// rounding half away from zero to two fraction digits
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.Abs().GreaterThan(maxAmount) {
		return 0, fmt.Errorf("amount %s exceeds the limit of %s", d.String(), maxAmount.String())
	}
	return Money(d.Round(minorUnitExp).Shift(minorUnitExp).IntPart()), nil
}

// ParseMoney parses a decimal string such as "150" or "12.5"
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return MoneyFromDecimal(d)
}

// NewMoney builds an amount from whole riyals and halalas
func NewMoney(riyals, halalas int64) Money {
	return Money(riyals*100 + halalas)
}

// Decimal returns the amount in major units
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -minorUnitExp)
}

// Times multiplies the amount by a quantity
func (m Money) Times(quantity int) Money {
	return m * Money(quantity)
}

// IsNegative reports whether the amount is below zero
func (m Money) IsNegative() bool {
	return m < 0
}

// String formats the amount with two fraction digits, e.g. "290.00"
func (m Money) String() string {
	return m.Decimal().StringFixed(minorUnitExp)
}

// MarshalJSON encodes the amount as a JSON number in major units
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string or null
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
	}

	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}
