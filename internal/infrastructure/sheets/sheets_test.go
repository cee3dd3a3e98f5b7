package sheets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for idx, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("set sheet row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestScheduleProvider_ListTournaments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, scheduleWorkbook), [][]any{
		{"StartDate", "Event", "Purse"},
		{"2026-02-12", "Desert Classic", "$9,200,000"},
		{"2026-01-29", "Farmers Open", "$9,000,000"},
		{"", "", ""},
	})

	got, err := NewScheduleProvider(dir).ListTournaments(context.Background())
	if err != nil {
		t.Fatalf("ListTournaments error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tournaments, got %d", len(got))
	}
	if got[0].Name != "Farmers Open" {
		t.Fatalf("expected earliest tournament first, got %q", got[0].Name)
	}
	want := time.Date(2026, time.January, 29, 0, 0, 0, 0, time.UTC)
	if !got[0].StartAt.Equal(want) {
		t.Fatalf("unexpected start date: %v", got[0].StartAt)
	}
	if got[1].Purse != "$9,200,000" {
		t.Fatalf("unexpected purse: %q", got[1].Purse)
	}
}

func TestScheduleProvider_MissingColumn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, scheduleWorkbook), [][]any{
		{"Event", "Purse"},
		{"Desert Classic", "$9,200,000"},
	})

	if _, err := NewScheduleProvider(dir).ListTournaments(context.Background()); err == nil {
		t.Fatal("expected error for missing StartDate column")
	}
}

func TestRankingsProvider_ListPlayers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, rankingsWorkbook), [][]any{
		{"OWGR", "Player", "Country", "Tour", "Availability"},
		{"2", "Rory McIlroy", "NIR", "PGA", "1"},
		{"1", "Scottie Scheffler", "USA", "PGA", "1"},
	})

	got, err := NewRankingsProvider(dir).ListPlayers(context.Background())
	if err != nil {
		t.Fatalf("ListPlayers error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 players, got %d", len(got))
	}
	if got[0].Name != "Scottie Scheffler" || got[0].Rank != 1 {
		t.Fatalf("expected rank order, got %+v", got[0])
	}
	if got[1].Country != "NIR" || got[1].Availability != 1 {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}

func TestResultsProvider_ListResults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, resultsWorkbook), [][]any{
		{"Player", "Result", "Earnings"},
		{"Scottie Scheffler", "1", "$1,782,000"},
		{"Rory McIlroy", "T12", "$183,150"},
	})

	got, err := NewResultsProvider(dir).ListResults(context.Background(), "Desert Classic")
	if err != nil {
		t.Fatalf("ListResults error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Finish != "1" || got[0].Earnings != "$1,782,000" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
}

func TestResultsProvider_PrefersTournamentWorkbook(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, resultsWorkbook), [][]any{
		{"Player", "Result", "Earnings"},
		{"Shared Row", "MC", ""},
	})
	resultsDir := filepath.Join(dir, "results")
	writeWorkbook(t, filepath.Join(resultsDir, "desert-classic.xlsx"), [][]any{
		{"Player", "Result", "Earnings"},
		{"Specific Row", "2", "$1,079,100"},
	})

	got, err := NewResultsProvider(dir).ListResults(context.Background(), "Desert Classic")
	if err != nil {
		t.Fatalf("ListResults error: %v", err)
	}
	if len(got) != 1 || got[0].Golfer != "Specific Row" {
		t.Fatalf("expected tournament workbook rows, got %+v", got)
	}
}
