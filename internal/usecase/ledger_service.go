package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openfairway/one-and-done/internal/domain/ledger"
	"github.com/openfairway/one-and-done/internal/platform/logging"
)

// LedgerService reconciles weekly results onto the scoring ledger.
type LedgerService struct {
	ledgerRepo  ledger.Repository
	resultsProv ledger.ResultsProvider
	logger      *logging.Logger
	now         func() time.Time
}

func NewLedgerService(
	ledgerRepo ledger.Repository,
	resultsProv ledger.ResultsProvider,
	logger *logging.Logger,
) *LedgerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LedgerService{
		ledgerRepo:  ledgerRepo,
		resultsProv: resultsProv,
		logger:      logger,
		now:         time.Now,
	}
}

// ReconcileFromProvider pulls the weekly result rows for the tournament and
// applies them.
func (s *LedgerService) ReconcileFromProvider(ctx context.Context, tournament string) (ledger.ReconciliationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.ReconcileFromProvider")
	defer span.End()

	if s.resultsProv == nil {
		return ledger.ReconciliationReport{}, fmt.Errorf("%w: results feed is not configured", ErrDependencyUnavailable)
	}

	rows, err := s.resultsProv.ListResults(ctx, tournament)
	if err != nil {
		return ledger.ReconciliationReport{}, fmt.Errorf("list weekly results: %w", err)
	}

	return s.ReconcileWeeklyResults(ctx, tournament, rows)
}

// ReconcileWeeklyResults writes results onto pending ledger entries for the
// tournament. Entries already carrying a result are never touched, so
// re-running a batch is safe. A golfer absent from the feed missed the cut
// and is recorded as MC with zero earnings. Rows whose earnings text cannot
// be parsed are reported as unmatched and their entries stay pending; the
// rest of the batch still applies.
func (s *LedgerService) ReconcileWeeklyResults(ctx context.Context, tournament string, rows []ledger.ResultRow) (ledger.ReconciliationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.ReconcileWeeklyResults")
	defer span.End()

	tournament = strings.TrimSpace(tournament)
	if tournament == "" {
		return ledger.ReconciliationReport{}, fmt.Errorf("%w: tournament is required", ErrInvalidInput)
	}

	pending, err := s.ledgerRepo.ListPendingByTournament(ctx, tournament)
	if err != nil {
		return ledger.ReconciliationReport{}, fmt.Errorf("list pending ledger entries: %w", err)
	}

	report := ledger.ReconciliationReport{Tournament: tournament}
	if len(pending) == 0 {
		return report, nil
	}

	rowByGolfer := make(map[string]ledger.ResultRow, len(rows))
	for _, row := range rows {
		name := strings.ToLower(strings.TrimSpace(row.Golfer))
		if name == "" {
			continue
		}
		rowByGolfer[name] = row
	}

	updates := make([]ledger.ResultUpdate, 0, len(pending))
	for _, entry := range pending {
		row, matched := rowByGolfer[strings.ToLower(strings.TrimSpace(entry.Golfer))]
		if !matched {
			updates = append(updates, ledger.ResultUpdate{
				UserID:     entry.UserID,
				Tournament: entry.Tournament,
				Finish:     ledger.MissedCut,
			})
			report.Defaulted++
			continue
		}

		earnings, ok := ledger.ParseEarnings(row.Earnings)
		if !ok {
			s.logger.WarnContext(ctx, "unparseable earnings in result row",
				"tournament", tournament,
				"golfer", entry.Golfer,
				"earnings", row.Earnings,
			)
			report.Unmatched = append(report.Unmatched, entry.Golfer)
			continue
		}

		finish := strings.TrimSpace(row.Finish)
		if finish == "" {
			finish = ledger.MissedCut
		}

		updates = append(updates, ledger.ResultUpdate{
			UserID:     entry.UserID,
			Tournament: entry.Tournament,
			Finish:     finish,
			Earnings:   earnings,
		})
		report.Updated++
	}

	if len(updates) == 0 {
		return report, nil
	}
	if err := s.ledgerRepo.ApplyResults(ctx, updates); err != nil {
		return ledger.ReconciliationReport{}, fmt.Errorf("apply results: %w", err)
	}

	return report, nil
}

// ListEntries returns the user's ledger entries in draft order.
func (s *LedgerService) ListEntries(ctx context.Context, userID string) ([]ledger.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.ListEntries")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	items, err := s.ledgerRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return items, nil
}

// ClearSeason wipes all selections and ledger entries. Admin only.
func (s *LedgerService) ClearSeason(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.ClearSeason")
	defer span.End()

	if err := s.ledgerRepo.ClearSeason(ctx); err != nil {
		return fmt.Errorf("clear season: %w", err)
	}
	s.logger.WarnContext(ctx, "season data cleared")
	return nil
}
