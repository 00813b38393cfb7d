// Package importer parses bank CSV exports into transaction params so they
// can be submitted to the financial service like any form entry.
package importer

import (
	"fmt"
	"io"

	"centavo/internal/transaction"
)

// Format identifies a supported bank export layout.
type Format string

const (
	// FormatGeneric covers "date, description, amount" exports with plain
	// decimal amounts.
	FormatGeneric Format = "generic"
	// FormatCGD covers Caixa Geral de Depósitos exports: semicolon-separated,
	// European decimal commas, debit and credit in separate columns.
	FormatCGD Format = "cgd"
)

// Row is one parsed statement line. The sign of the source amount decides
// the direction; amounts are always positive in Params.
type Row struct {
	Type   transaction.Type
	Params transaction.CreateParams
}

type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}

type Service struct {
	parsers map[Format]Parser
}

func NewService() *Service {
	return &Service{
		parsers: map[Format]Parser{
			FormatGeneric: newCSVParser(genericProfile),
			FormatCGD:     newCSVParser(cgdProfile),
		},
	}
}

func (s *Service) Formats() []Format {
	return []Format{FormatGeneric, FormatCGD}
}

func (s *Service) Import(format Format, r io.Reader) ([]Row, error) {
	parser, ok := s.parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return parser.Parse(r)
}
