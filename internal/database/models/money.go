package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MaxMoney is the first value that no longer fits numeric(12,2).
var MaxMoney = decimal.New(1, 10)

// Money is a nullable fixed-point amount stored as numeric(12,2) and
// rendered to callers as a JSON number.
type Money struct {
	decimal.NullDecimal
}

// NewMoney rounds f to cents.
func NewMoney(f float64) Money {
	return Money{decimal.NullDecimal{Decimal: decimal.NewFromFloat(f).Round(2), Valid: true}}
}

// MoneyFromPtr maps nil to SQL NULL.
func MoneyFromPtr(f *float64) Money {
	if f == nil {
		return Money{}
	}
	return NewMoney(*f)
}

// Float64 returns nil when the amount is NULL.
func (m Money) Float64() *float64 {
	if !m.Valid {
		return nil
	}
	f, _ := m.Decimal.Float64()
	return &f
}

// Fits reports whether the amount can be stored without overflow.
func (m Money) Fits() bool {
	return !m.Valid || m.Decimal.Abs().LessThan(MaxMoney)
}

func (m Money) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	f, _ := m.Decimal.Float64()
	return json.Marshal(f)
}
