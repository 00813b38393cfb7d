package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"centavo/internal/date"
	"centavo/internal/encoding"
	"centavo/internal/money"
	"centavo/internal/transaction"
)

// profile describes one bank's CSV layout. Either amountCol (signed) or the
// debitCol/creditCol pair must be set.
type profile struct {
	name       string
	comma      rune
	dateCol    string
	descCol    string
	amountCol  string
	debitCol   string
	creditCol  string
	dateLayout string
	// decimalComma marks European formatting ("1.234,56").
	decimalComma bool
	currency     string
}

var genericProfile = profile{
	name:       "generic",
	comma:      ',',
	dateCol:    "date",
	descCol:    "description",
	amountCol:  "amount",
	dateLayout: "2006-01-02",
}

var cgdProfile = profile{
	name:         "cgd",
	comma:        ';',
	dateCol:      "Data mov.",
	descCol:      "Descrição",
	debitCol:     "Débito",
	creditCol:    "Crédito",
	dateLayout:   "02-01-2006",
	decimalComma: true,
	currency:     "EUR",
}

type csvParser struct {
	profile profile
}

func newCSVParser(p profile) *csvParser {
	return &csvParser{profile: p}
}

func (p *csvParser) Parse(r io.Reader) ([]Row, error) {
	utf8r, _, err := encoding.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = p.profile.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, err := p.findHeader(records)
	if err != nil {
		return nil, err
	}

	var rows []Row

	for i, record := range records[headerIdx+1:] {
		lineNum := headerIdx + i + 2

		row, ok, err := p.parseRecord(cols, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if ok {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// findHeader scans for the first row containing every required column.
// Bank exports often prepend account metadata above the real header.
func (p *csvParser) findHeader(records [][]string) (map[string]int, int, error) {
	required := []string{p.profile.dateCol, p.profile.descCol}

	if p.profile.amountCol != "" {
		required = append(required, p.profile.amountCol)
	} else {
		required = append(required, p.profile.debitCol, p.profile.creditCol)
	}

	for idx, record := range records {
		cols := make(map[string]int, len(record))

		for i, cell := range record {
			if name := strings.TrimSpace(cell); name != "" {
				cols[strings.ToLower(name)] = i
			}
		}

		found := true

		for _, name := range required {
			if _, ok := cols[strings.ToLower(name)]; !ok {
				found = false
				break
			}
		}

		if found {
			return cols, idx, nil
		}
	}

	return nil, 0, fmt.Errorf("no header row matching the %s layout", p.profile.name)
}

func (p *csvParser) parseRecord(cols map[string]int, record []string) (Row, bool, error) {
	field := func(name string) string {
		idx, ok := cols[strings.ToLower(name)]
		if !ok || idx >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[idx])
	}

	rawDate := field(p.profile.dateCol)
	if rawDate == "" {
		// Trailing summary rows carry no date; skip them.
		return Row{}, false, nil
	}

	parsed, err := time.Parse(p.profile.dateLayout, rawDate)
	if err != nil {
		return Row{}, false, fmt.Errorf("parsing date %q: %w", rawDate, err)
	}

	amount, txType, err := p.amount(field)
	if err != nil {
		return Row{}, false, err
	}

	if amount.IsZero() {
		return Row{}, false, nil
	}

	return Row{
		Type: txType,
		Params: transaction.CreateParams{
			Amount:      amount,
			Date:        date.FromTime(parsed),
			Description: field(p.profile.descCol),
			Currency:    p.profile.currency,
		},
	}, true, nil
}

func (p *csvParser) amount(field func(string) string) (money.Amount, transaction.Type, error) {
	if p.profile.amountCol != "" {
		raw := field(p.profile.amountCol)

		amount, err := p.parseAmount(raw)
		if err != nil {
			return money.Amount{}, "", fmt.Errorf("parsing amount %q: %w", raw, err)
		}

		if amount.IsNegative() {
			return amount.Neg(), transaction.TypeExpense, nil
		}

		return amount, transaction.TypeIncome, nil
	}

	if raw := field(p.profile.debitCol); raw != "" {
		amount, err := p.parseAmount(raw)
		if err != nil {
			return money.Amount{}, "", fmt.Errorf("parsing debit %q: %w", raw, err)
		}

		if amount.IsNegative() {
			amount = amount.Neg()
		}

		return amount, transaction.TypeExpense, nil
	}

	if raw := field(p.profile.creditCol); raw != "" {
		amount, err := p.parseAmount(raw)
		if err != nil {
			return money.Amount{}, "", fmt.Errorf("parsing credit %q: %w", raw, err)
		}

		return amount, transaction.TypeIncome, nil
	}

	return money.Amount{}, transaction.TypeExpense, nil
}

func (p *csvParser) parseAmount(raw string) (money.Amount, error) {
	if raw == "" {
		return money.Amount{}, nil
	}

	if p.profile.decimalComma {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	} else {
		raw = strings.ReplaceAll(raw, ",", "")
	}

	return money.Parse(raw)
}
