package sheets

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/openfairway/one-and-done/internal/domain/schedule"
)

const scheduleWorkbook = "schedule.xlsx"

// dateLayouts covers the formats the schedule sheet has shipped with.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01-02-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	"1/2/06 15:04",
}

type ScheduleProvider struct {
	dir string
}

func NewScheduleProvider(dir string) *ScheduleProvider {
	return &ScheduleProvider{dir: dir}
}

func (p *ScheduleProvider) ListTournaments(_ context.Context) ([]schedule.Tournament, error) {
	rows, err := readFirstSheet(filepath.Join(p.dir, scheduleWorkbook))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("schedule workbook is empty")
	}

	index := headerIndex(rows[0])
	startCol, ok := columnFor(index, "startdate", "start date", "date")
	if !ok {
		return nil, fmt.Errorf("schedule workbook is missing a StartDate column")
	}
	eventCol, ok := columnFor(index, "event", "tournament")
	if !ok {
		return nil, fmt.Errorf("schedule workbook is missing an Event column")
	}
	purseCol, _ := columnFor(index, "purse")

	out := make([]schedule.Tournament, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, eventCol)
		if name == "" {
			continue
		}
		startAt, err := parseSheetDate(cell(row, startCol))
		if err != nil {
			return nil, fmt.Errorf("parse start date for %s: %w", name, err)
		}
		out = append(out, schedule.Tournament{
			Name:    name,
			StartAt: startAt,
			Purse:   cell(row, purseCol),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out, nil
}

func parseSheetDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
