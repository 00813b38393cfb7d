package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/importer"
	"centavo/internal/transaction"
)

func TestImport_Generic(t *testing.T) {
	input := strings.Join([]string{
		"date,description,amount",
		"2024-01-15,Salary,1500.00",
		"2024-01-16,Groceries,-88.20",
		"2024-01-17,Refund,12.50",
	}, "\n")

	svc := importer.NewService()

	rows, err := svc.Import(importer.FormatGeneric, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, transaction.TypeIncome, rows[0].Type)
	assert.Equal(t, "1500.00", rows[0].Params.Amount.String())
	assert.Equal(t, "2024-01-15", rows[0].Params.Date.String())
	assert.Equal(t, "Salary", rows[0].Params.Description)

	// Negative amounts become positive expenses.
	assert.Equal(t, transaction.TypeExpense, rows[1].Type)
	assert.Equal(t, "88.20", rows[1].Params.Amount.String())

	assert.Equal(t, transaction.TypeIncome, rows[2].Type)
}

func TestImport_CGD(t *testing.T) {
	input := strings.Join([]string{
		"Consultar saldos e movimentos à ordem;;;;",
		"Data mov.;Data valor;Descrição;Débito;Crédito",
		"15-01-2024;15-01-2024;COMPRA CONTINENTE;1.234,56;",
		"16-01-2024;16-01-2024;TRF ORDENADO;;2.000,00",
		";;Saldo contabilístico;;765,44",
	}, "\n")

	svc := importer.NewService()

	rows, err := svc.Import(importer.FormatCGD, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, transaction.TypeExpense, rows[0].Type)
	assert.Equal(t, "1234.56", rows[0].Params.Amount.String())
	assert.Equal(t, "2024-01-15", rows[0].Params.Date.String())
	assert.Equal(t, "COMPRA CONTINENTE", rows[0].Params.Description)
	assert.Equal(t, "EUR", rows[0].Params.Currency)

	assert.Equal(t, transaction.TypeIncome, rows[1].Type)
	assert.Equal(t, "2000.00", rows[1].Params.Amount.String())
}

func TestImport_SkipsZeroAndDatelessRows(t *testing.T) {
	input := strings.Join([]string{
		"date,description,amount",
		"2024-02-01,Zero entry,0.00",
		",Summary row,99.99",
		"2024-02-02,Coffee,-2.50",
	}, "\n")

	svc := importer.NewService()

	rows, err := svc.Import(importer.FormatGeneric, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Coffee", rows[0].Params.Description)
}

func TestImport_MissingHeader(t *testing.T) {
	svc := importer.NewService()

	_, err := svc.Import(importer.FormatGeneric, strings.NewReader("foo,bar\n1,2\n"))
	assert.ErrorContains(t, err, "no header row")
}

func TestImport_BadDate(t *testing.T) {
	input := "date,description,amount\nnot-a-date,Broken,10.00\n"

	svc := importer.NewService()

	_, err := svc.Import(importer.FormatGeneric, strings.NewReader(input))
	assert.ErrorContains(t, err, "line 2")
}

func TestImport_UnknownFormat(t *testing.T) {
	svc := importer.NewService()

	_, err := svc.Import(importer.Format("n26"), strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown import format")
}
