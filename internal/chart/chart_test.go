package chart_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/chart"
	"centavo/internal/money"
	"centavo/internal/report"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestIncomeVsExpenses(t *testing.T) {
	got, err := chart.IncomeVsExpenses(&report.Summary{
		TotalIncome:   money.FromFloat(1500),
		TotalExpenses: money.FromFloat(900),
		NetBalance:    money.FromFloat(600),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(got, pngMagic))
}

func TestIncomeVsExpenses_NoData(t *testing.T) {
	_, err := chart.IncomeVsExpenses(nil)
	assert.ErrorIs(t, err, chart.ErrNoData)

	_, err = chart.IncomeVsExpenses(&report.Summary{})
	assert.ErrorIs(t, err, chart.ErrNoData)
}

func TestSpendingByCategory(t *testing.T) {
	got, err := chart.SpendingByCategory([]report.BreakdownItem{
		{CategoryName: "Groceries", Total: money.FromFloat(320), Percentage: 40},
		{CategoryName: "Rent", Total: money.FromFloat(480), Percentage: 60},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(got, pngMagic))
}

func TestSpendingByCategory_Empty(t *testing.T) {
	_, err := chart.SpendingByCategory(nil)
	assert.ErrorIs(t, err, chart.ErrNoData)
}
