package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/openfairway/one-and-done/internal/domain/schedule"
	"github.com/openfairway/one-and-done/internal/domain/selection"
	"github.com/openfairway/one-and-done/internal/platform/logging"
	"github.com/openfairway/one-and-done/internal/platform/resilience"
)

const (
	defaultSweepInterval = 30 * time.Second
	defaultSweepWorkers  = 4
)

type SubmitSelectionInput struct {
	UserID     string
	Tournament string
	Golfer     string
}

// SelectionService owns the pick lifecycle: drafting, locking, and the
// sweep that locks picks for tournaments that have started.
type SelectionService struct {
	selectionRepo selection.Repository
	scheduleProv  schedule.Provider
	logger        *logging.Logger
	now           func() time.Time

	sweepFlight   resilience.SingleFlight
	sweepMu       sync.Mutex
	lastSweepAt   time.Time
	sweepInterval time.Duration
	sweepWorkers  int
}

func NewSelectionService(
	selectionRepo selection.Repository,
	scheduleProv schedule.Provider,
	logger *logging.Logger,
) *SelectionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SelectionService{
		selectionRepo: selectionRepo,
		scheduleProv:  scheduleProv,
		logger:        logger,
		now:           time.Now,
		sweepInterval: defaultSweepInterval,
		sweepWorkers:  defaultSweepWorkers,
	}
}

// ConfigureSweep overrides the sweep interval and worker count. Zero or
// negative values keep the defaults.
func (s *SelectionService) ConfigureSweep(interval time.Duration, workers int) {
	if interval > 0 {
		s.sweepInterval = interval
	}
	if workers > 0 {
		s.sweepWorkers = workers
	}
}

// Submit drafts or redrafts the user's pick for a tournament. A locked pick
// cannot be replaced, and a golfer already burned on another locked pick
// cannot be picked again.
func (s *SelectionService) Submit(ctx context.Context, input SubmitSelectionInput) (selection.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Submit")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Tournament = strings.TrimSpace(input.Tournament)
	input.Golfer = strings.TrimSpace(input.Golfer)

	if input.UserID == "" {
		return selection.Selection{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.Tournament == "" {
		return selection.Selection{}, fmt.Errorf("%w: tournament is required", ErrInvalidInput)
	}
	if input.Golfer == "" {
		return selection.Selection{}, fmt.Errorf("%w: golfer is required", ErrInvalidInput)
	}

	if err := s.ensureKnownTournament(ctx, input.Tournament); err != nil {
		return selection.Selection{}, err
	}

	existing, exists, err := s.selectionRepo.GetByUserAndTournament(ctx, input.UserID, input.Tournament)
	if err != nil {
		return selection.Selection{}, fmt.Errorf("get selection: %w", err)
	}
	if exists && existing.IsLocked {
		return selection.Selection{}, fmt.Errorf("%w: pick for %s is already locked", ErrLocked, input.Tournament)
	}

	if err := s.ensureGolferUnused(ctx, input.UserID, input.Tournament, input.Golfer); err != nil {
		return selection.Selection{}, err
	}

	if err := s.selectionRepo.EnsureTournamentOrder(ctx, input.Tournament); err != nil {
		return selection.Selection{}, fmt.Errorf("ensure tournament order: %w", err)
	}

	item := selection.Selection{
		UserID:     input.UserID,
		Tournament: input.Tournament,
		Golfer:     input.Golfer,
		PickedAt:   s.now().UTC(),
	}
	if err := s.selectionRepo.Upsert(ctx, item); err != nil {
		return selection.Selection{}, fmt.Errorf("upsert selection: %w", err)
	}

	return item, nil
}

// Lock finalizes the user's pick for a tournament. It is idempotent: locking
// an already locked pick succeeds without touching the ledger again. The
// returned bool reports whether this call seeded a ledger entry.
func (s *SelectionService) Lock(ctx context.Context, userID, tournament string) (selection.Selection, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Lock")
	defer span.End()

	userID = strings.TrimSpace(userID)
	tournament = strings.TrimSpace(tournament)
	if userID == "" {
		return selection.Selection{}, false, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if tournament == "" {
		return selection.Selection{}, false, fmt.Errorf("%w: tournament is required", ErrInvalidInput)
	}

	existing, exists, err := s.selectionRepo.GetByUserAndTournament(ctx, userID, tournament)
	if err != nil {
		return selection.Selection{}, false, fmt.Errorf("get selection: %w", err)
	}
	if !exists {
		return selection.Selection{}, false, fmt.Errorf("%w: no pick for %s", ErrNotFound, tournament)
	}

	// A drafted golfer may have been burned at another tournament since the
	// draft. Re-check before the pick becomes final.
	if !existing.IsLocked {
		if err := s.ensureGolferUnused(ctx, userID, tournament, strings.TrimSpace(existing.Golfer)); err != nil {
			return selection.Selection{}, false, err
		}
	}

	locked, created, err := s.selectionRepo.Lock(ctx, userID, tournament, s.now().UTC())
	if err != nil {
		return selection.Selection{}, false, fmt.Errorf("lock selection: %w", err)
	}

	return locked, created, nil
}

// ensureGolferUnused rejects a golfer already burned on one of the user's
// locked picks at another tournament. Comparison is case-insensitive.
func (s *SelectionService) ensureGolferUnused(ctx context.Context, userID, tournament, golfer string) error {
	locked, err := s.selectionRepo.ListLockedByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list locked selections: %w", err)
	}
	for _, item := range locked {
		if strings.EqualFold(strings.TrimSpace(item.Tournament), tournament) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(item.Golfer), golfer) {
			return fmt.Errorf("%w: %s was already used at %s", ErrInvalidInput, golfer, item.Tournament)
		}
	}
	return nil
}

// ListByUser returns the user's selections in draft order.
func (s *SelectionService) ListByUser(ctx context.Context, userID string) ([]selection.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.ListByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	items, err := s.selectionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return items, nil
}

// AutoLockPastTournaments locks every unlocked pick for tournaments whose
// start time has passed. Concurrent callers share one sweep, and repeat
// callers within the sweep interval are skipped.
func (s *SelectionService) AutoLockPastTournaments(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.AutoLockPastTournaments")
	defer span.End()

	now := s.now().UTC()
	if s.shouldSkipSweep(now) {
		return 0, nil
	}

	out, err, _ := s.sweepFlight.Do("selection:autolock", func() (any, error) {
		runNow := s.now().UTC()
		if s.shouldSkipSweep(runNow) {
			return 0, nil
		}

		count, runErr := s.sweepOnce(ctx, runNow)
		if runErr != nil {
			return 0, runErr
		}
		s.markSweep(runNow)
		return count, nil
	})
	if err != nil {
		return 0, err
	}

	count, _ := out.(int)
	return count, nil
}

func (s *SelectionService) sweepOnce(ctx context.Context, now time.Time) (int, error) {
	tournaments, err := s.scheduleProv.ListTournaments(ctx)
	if err != nil {
		return 0, fmt.Errorf("list tournaments for autolock: %w", err)
	}

	started := make([]schedule.Tournament, 0, len(tournaments))
	for _, item := range tournaments {
		if item.Started(now) {
			started = append(started, item)
		}
	}
	if len(started) == 0 {
		return 0, nil
	}

	pool, err := ants.NewPool(s.sweepWorkers)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		total    int
		firstErr error
	)
	for _, item := range started {
		tournament := item.Name
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			count, lockErr := s.selectionRepo.LockAllByTournament(ctx, tournament, now)
			mu.Lock()
			defer mu.Unlock()
			if lockErr != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("autolock %s: %w", tournament, lockErr)
				}
				return
			}
			total += count
		}); err != nil {
			wg.Done()
			return 0, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return 0, firstErr
	}
	if total > 0 {
		s.logger.InfoContext(ctx, "auto-locked selections", "count", total)
	}
	return total, nil
}

func (s *SelectionService) ensureKnownTournament(ctx context.Context, tournament string) error {
	if s.scheduleProv == nil {
		return nil
	}

	tournaments, err := s.scheduleProv.ListTournaments(ctx)
	if err != nil {
		return fmt.Errorf("list tournaments: %w", err)
	}
	for _, item := range tournaments {
		if strings.EqualFold(strings.TrimSpace(item.Name), tournament) {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown tournament %s", ErrNotFound, tournament)
}

func (s *SelectionService) shouldSkipSweep(now time.Time) bool {
	if s.sweepInterval <= 0 {
		return false
	}
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()
	if s.lastSweepAt.IsZero() {
		return false
	}
	return now.Sub(s.lastSweepAt) < s.sweepInterval
}

func (s *SelectionService) markSweep(now time.Time) {
	s.sweepMu.Lock()
	s.lastSweepAt = now
	s.sweepMu.Unlock()
}
