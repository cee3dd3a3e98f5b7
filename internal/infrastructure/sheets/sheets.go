// Package sheets reads the pool's source-of-truth workbooks: the season
// schedule, the world rankings, and the weekly result sheets.
package sheets

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

func readFirstSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheetList[0], path, err)
	}
	return rows, nil
}

// headerIndex maps normalized header names to their column position.
func headerIndex(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for idx, name := range header {
		key := normalizeHeader(name)
		if key == "" {
			continue
		}
		if _, exists := out[key]; !exists {
			out[key] = idx
		}
	}
	return out
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(name)), " "))
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func columnFor(index map[string]int, names ...string) (int, bool) {
	for _, name := range names {
		if idx, ok := index[name]; ok {
			return idx, true
		}
	}
	return -1, false
}
