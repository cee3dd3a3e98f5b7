package sheets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openfairway/one-and-done/internal/domain/ledger"
)

const resultsWorkbook = "WeeklyResult.xlsx"

// ResultsProvider reads weekly result sheets. A tournament-specific workbook
// under results/ wins over the shared weekly one.
type ResultsProvider struct {
	dir string
}

func NewResultsProvider(dir string) *ResultsProvider {
	return &ResultsProvider{dir: dir}
}

func (p *ResultsProvider) ListResults(_ context.Context, tournament string) ([]ledger.ResultRow, error) {
	path := filepath.Join(p.dir, "results", sanitizeWorkbookName(tournament)+".xlsx")
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(p.dir, resultsWorkbook)
	}

	rows, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("results workbook is empty")
	}

	index := headerIndex(rows[0])
	nameCol, ok := columnFor(index, "player", "name", "golfer")
	if !ok {
		return nil, fmt.Errorf("results workbook is missing a Player column")
	}
	finishCol, ok := columnFor(index, "result", "finish", "pos")
	if !ok {
		return nil, fmt.Errorf("results workbook is missing a Result column")
	}
	earningsCol, _ := columnFor(index, "earnings", "money", "prize")

	out := make([]ledger.ResultRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		out = append(out, ledger.ResultRow{
			Golfer:   name,
			Finish:   cell(row, finishCol),
			Earnings: cell(row, earningsCol),
		})
	}
	return out, nil
}

func sanitizeWorkbookName(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, cleaned)
	return strings.Trim(mapped, "-")
}
