package models

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimals money is shown and rounded with.
const MoneyPlaces = 2

// Decimal is a decimal.Decimal that is written to JSON as a number (10.5, not "10.5"),
// the shape the directory uses for balances and amounts. Reading accepts both forms and null.
type Decimal struct {
	decimal.Decimal
}

func NewDecimalFromExternal(d decimal.Decimal) Decimal {
	return Decimal{d}
}

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Decimal {
	return Decimal{d.Round(MoneyPlaces)}
}

func NewDecimal(value string) (Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Decimal{}, err
	}

	return Decimal{d}, nil
}

func MustDecimal(value string) Decimal {
	return Decimal{decimal.RequireFromString(value)}
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Decimal = decimal.Zero
		return nil
	}
	return d.Decimal.UnmarshalJSON(data)
}
