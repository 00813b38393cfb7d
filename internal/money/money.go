package money

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal monetary value as reported by the financial service.
// The service is inconsistent about serialization: amounts arrive either as
// JSON numbers or as decimal strings ("1234.56"). Missing, null or otherwise
// unparseable amounts decode to zero instead of failing the whole payload.
type Amount struct {
	d decimal.Decimal
}

func Zero() Amount {
	return Amount{}
}

func New(d decimal.Decimal) Amount {
	return Amount{d: d}
}

func FromFloat(f float64) Amount {
	return Amount{d: decimal.NewFromFloat(f)}
}

// Parse parses a decimal string. Unlike UnmarshalJSON it reports the error.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, err
	}

	return Amount{d: d}, nil
}

func (a Amount) Add(b Amount) Amount      { return Amount{d: a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount      { return Amount{d: a.d.Sub(b.d)} }
func (a Amount) Neg() Amount              { return Amount{d: a.d.Neg()} }
func (a Amount) IsZero() bool             { return a.d.IsZero() }
func (a Amount) IsNegative() bool         { return a.d.IsNegative() }
func (a Amount) Equal(b Amount) bool      { return a.d.Equal(b.d) }
func (a Amount) GreaterThan(b Amount) bool { return a.d.GreaterThan(b.d) }
func (a Amount) LessThan(b Amount) bool   { return a.d.LessThan(b.d) }

func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// Ratio returns a/b as a float, or 0 when b is zero.
func (a Amount) Ratio(b Amount) float64 {
	if b.d.IsZero() {
		return 0
	}

	f, _ := a.d.Div(b.d).Float64()

	return f
}

// String renders the amount with two decimal places.
func (a Amount) String() string {
	return a.d.StringFixed(2)
}

// MarshalJSON serializes as a decimal string, which every endpoint accepts.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.d.StringFixed(2))), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.d = decimal.Decimal{}
		return nil
	}

	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			a.d = decimal.Decimal{}
			return nil
		}

		s = unquoted
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		a.d = decimal.Decimal{}
		return nil
	}

	a.d = d

	return nil
}

// Sum adds up the amounts selected by fn over a slice.
func Sum[T any](items []T, fn func(T) Amount) Amount {
	var total Amount
	for _, item := range items {
		total = total.Add(fn(item))
	}

	return total
}
