// Package chart renders report aggregates to PNG images for export from the
// reports page.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"centavo/internal/report"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

// IncomeVsExpenses renders the summary's income, expense and net bars.
func IncomeVsExpenses(summary *report.Summary) ([]byte, error) {
	if summary == nil {
		return nil, ErrNoData
	}

	income := summary.TotalIncome.Float64()
	expenses := summary.TotalExpenses.Float64()

	if income == 0 && expenses == 0 {
		return nil, ErrNoData
	}

	graph := chart.BarChart{
		Title:    "Income vs Expenses",
		Width:    600,
		Height:   400,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Bars: []chart.Value{
			{
				Label: "Income",
				Value: income,
				Style: chart.Style{FillColor: chart.ColorGreen, StrokeColor: chart.ColorGreen},
			},
			{
				Label: "Expenses",
				Value: expenses,
				Style: chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed},
			},
			{
				Label: "Net",
				Value: summary.NetBalance.Float64(),
				Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue},
			},
		},
	}

	return render(graph)
}

// SpendingByCategory renders one bar per category of the breakdown.
func SpendingByCategory(items []report.BreakdownItem) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(items))

	for _, item := range items {
		label := item.CategoryName
		if label == "" {
			label = "Uncategorized"
		}

		bars = append(bars, chart.Value{
			Label: label,
			Value: item.Total.Float64(),
			Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue},
		})
	}

	graph := chart.BarChart{
		Title:    "Spending by Category",
		Width:    200 * len(bars),
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Bars: bars,
	}

	return render(graph)
}

func render(graph chart.BarChart) ([]byte, error) {
	var buf bytes.Buffer

	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}

	return buf.Bytes(), nil
}
