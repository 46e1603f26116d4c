// Package money provides the Amount value type used by every money
// field in the system. Amounts carry a fixed decimal precision and are
// rounded to it at construction and after every operation, so a single
// rounding policy applies everywhere money is compared or split.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultPrecision int32 = 2

var ErrInvalidPrecision = errors.New("invalid precision")

// Amount is an immutable fixed-precision decimal. The zero value is
// 0.00 at the default precision.
type Amount struct {
	value     decimal.Decimal
	precision int32
	set       bool
}

func New(value float64, precision int32) (Amount, error) {
	if precision < 0 {
		return Amount{}, fmt.Errorf("%w: %d", ErrInvalidPrecision, precision)
	}
	return Amount{
		value:     decimal.NewFromFloat(value).Round(precision),
		precision: precision,
		set:       true,
	}, nil
}

func FromFloat(value float64) Amount {
	amount, _ := New(value, DefaultPrecision)
	return amount
}

func FromCents(cents int64) Amount {
	return Amount{
		value:     decimal.New(cents, -2),
		precision: DefaultPrecision,
		set:       true,
	}
}

func Zero() Amount {
	return FromCents(0)
}

func (a Amount) Precision() int32 {
	if !a.set {
		return DefaultPrecision
	}
	return a.precision
}

func (a Amount) Add(other Amount) Amount {
	precision := maxPrecision(a.Precision(), other.Precision())
	return Amount{
		value:     a.value.Add(other.value).Round(precision),
		precision: precision,
		set:       true,
	}
}

func (a Amount) Sub(other Amount) Amount {
	precision := maxPrecision(a.Precision(), other.Precision())
	return Amount{
		value:     a.value.Sub(other.value).Round(precision),
		precision: precision,
		set:       true,
	}
}

func (a Amount) MulFloat(factor float64) Amount {
	precision := a.Precision()
	return Amount{
		value:     a.value.Mul(decimal.NewFromFloat(factor)).Round(precision),
		precision: precision,
		set:       true,
	}
}

// Equal compares numeric value regardless of representation, so
// 10.5 at precision 2 equals 10.50 at precision 4.
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) EqualFloat(value float64) bool {
	return a.value.Equal(decimal.NewFromFloat(value).Round(a.Precision()))
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

func (a Amount) IsNegative() bool {
	return a.value.IsNegative()
}

func (a Amount) IsPositive() bool {
	return a.value.IsPositive()
}

// Cents reports the amount as integer cents. Precisions beyond two
// decimal places are rounded half-up first; the split algorithms only
// ever move whole cents.
func (a Amount) Cents() int64 {
	return a.value.Round(2).Shift(2).IntPart()
}

func (a Amount) Float64() float64 {
	f, _ := a.value.Float64()
	return f
}

func (a Amount) String() string {
	return a.value.StringFixed(a.Precision())
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.StringFixed(a.Precision())), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*a = Zero()
		return nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	*a = Amount{value: value.Round(DefaultPrecision), precision: DefaultPrecision, set: true}
	return nil
}

// Value implements driver.Valuer so gorm can store Amount in a
// numeric column.
func (a Amount) Value() (driver.Value, error) {
	return a.value.StringFixed(a.Precision()), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(src any) error {
	var value decimal.Decimal
	if err := value.Scan(src); err != nil {
		return fmt.Errorf("scan amount: %w", err)
	}

	*a = Amount{value: value.Round(DefaultPrecision), precision: DefaultPrecision, set: true}
	return nil
}

func maxPrecision(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
