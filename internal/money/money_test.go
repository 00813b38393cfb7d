package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/money"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	type testCase struct {
		name string
		json string
		want string
	}

	tests := []testCase{
		{name: "DecimalString", json: `"1234.56"`, want: "1234.56"},
		{name: "Number", json: `1234.56`, want: "1234.56"},
		{name: "Integer", json: `40`, want: "40.00"},
		{name: "Null", json: `null`, want: "0.00"},
		{name: "EmptyString", json: `""`, want: "0.00"},
		{name: "Garbage", json: `"not a number"`, want: "0.00"},
		{name: "Negative", json: `"-588.74"`, want: "-588.74"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a money.Amount
			require.NoError(t, json.Unmarshal([]byte(tt.json), &a))
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestAmount_MissingFieldDecodesToZero(t *testing.T) {
	var payload struct {
		Amount money.Amount `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.True(t, payload.Amount.IsZero())
}

func TestAmount_MarshalJSON(t *testing.T) {
	a, err := money.Parse("99.5")
	require.NoError(t, err)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"99.50"`, string(data))
}

func TestAmount_Arithmetic(t *testing.T) {
	a, err := money.Parse("100")
	require.NoError(t, err)

	b, err := money.Parse("40")
	require.NoError(t, err)

	assert.Equal(t, "60.00", a.Sub(b).String())
	assert.Equal(t, "140.00", a.Add(b).String())
	assert.True(t, b.LessThan(a))
}

func TestSum(t *testing.T) {
	type row struct{ amount money.Amount }

	parse := func(s string) money.Amount {
		a, err := money.Parse(s)
		require.NoError(t, err)
		return a
	}

	rows := []row{{parse("10.10")}, {parse("20.20")}, {parse("0.70")}}

	total := money.Sum(rows, func(r row) money.Amount { return r.amount })
	assert.Equal(t, "31.00", total.String())
}

func TestAmount_Ratio(t *testing.T) {
	a, _ := money.Parse("50")
	b, _ := money.Parse("200")

	assert.InDelta(t, 0.25, a.Ratio(b), 1e-9)
	assert.Zero(t, a.Ratio(money.Zero()))
}
