package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/openfairway/one-and-done/internal/domain/schedule"
	"github.com/openfairway/one-and-done/internal/infrastructure/repository/memory"
	"github.com/openfairway/one-and-done/internal/platform/logging"
)

type stubScheduleProvider struct {
	tournaments []schedule.Tournament
	err         error
}

func (s *stubScheduleProvider) ListTournaments(_ context.Context) ([]schedule.Tournament, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tournaments, nil
}

func testSchedule(now time.Time) *stubScheduleProvider {
	return &stubScheduleProvider{
		tournaments: []schedule.Tournament{
			{Name: "Farmers Open", StartAt: now.Add(-48 * time.Hour), Purse: "$9,000,000"},
			{Name: "Desert Classic", StartAt: now.Add(72 * time.Hour), Purse: "$9,200,000"},
			{Name: "Players Championship", StartAt: now.Add(30 * 24 * time.Hour), Purse: "$25,000,000"},
		},
	}
}

func newSelectionServiceForTest(t *testing.T, now time.Time) (*SelectionService, *memory.SelectionRepository, *memory.LedgerRepository) {
	t.Helper()

	selRepo, ledRepo := memory.NewStores()
	svc := NewSelectionService(selRepo, testSchedule(now), logging.NewNop())
	svc.now = func() time.Time { return now }
	return svc, selRepo, ledRepo
}

func TestSelectionService_Submit_Validation(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSelectionServiceForTest(t, now)

	_, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Desert Classic"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing golfer, got %v", err)
	}

	_, err = svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Made Up Invitational", Golfer: "Scottie Scheffler"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown tournament, got %v", err)
	}
}

func TestSelectionService_Submit_RedraftBeforeLock(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, selRepo, _ := newSelectionServiceForTest(t, now)

	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Desert Classic", Golfer: "Scottie Scheffler"}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Desert Classic", Golfer: "Rory McIlroy"}); err != nil {
		t.Fatalf("redraft: %v", err)
	}

	got, exists, err := selRepo.GetByUserAndTournament(context.Background(), "u1", "Desert Classic")
	if err != nil || !exists {
		t.Fatalf("get selection: exists=%v err=%v", exists, err)
	}
	if got.Golfer != "Rory McIlroy" {
		t.Fatalf("expected redraft to replace golfer, got %q", got.Golfer)
	}
}

func TestSelectionService_Submit_RejectsLockedPickReplacement(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSelectionServiceForTest(t, now)

	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Farmers Open", Golfer: "Scottie Scheffler"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, _, err := svc.Lock(context.Background(), "u1", "Farmers Open"); err != nil {
		t.Fatalf("lock: %v", err)
	}

	_, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Farmers Open", Golfer: "Rory McIlroy"})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestSelectionService_Submit_RejectsReusedGolferCaseInsensitive(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSelectionServiceForTest(t, now)

	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Farmers Open", Golfer: "Scottie Scheffler"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, _, err := svc.Lock(context.Background(), "u1", "Farmers Open"); err != nil {
		t.Fatalf("lock: %v", err)
	}

	_, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Desert Classic", Golfer: "scottie scheffler"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for reused golfer, got %v", err)
	}
	if !strings.Contains(err.Error(), "Farmers Open") {
		t.Fatalf("expected error to name the prior tournament, got %q", err.Error())
	}
}

func TestSelectionService_Lock_IdempotentAndSeedsLedgerOnce(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, _, ledRepo := newSelectionServiceForTest(t, now)

	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Desert Classic", Golfer: "Scottie Scheffler"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	locked, created, err := svc.Lock(context.Background(), "u1", "Desert Classic")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if !created {
		t.Fatalf("expected first lock to seed a ledger entry")
	}
	if !locked.IsLocked || locked.LockedAt == nil {
		t.Fatalf("expected locked selection, got %+v", locked)
	}

	_, created, err = svc.Lock(context.Background(), "u1", "Desert Classic")
	if err != nil {
		t.Fatalf("second lock: %v", err)
	}
	if created {
		t.Fatalf("expected second lock to be a no-op on the ledger")
	}

	entries, err := ledRepo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list ledger entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(entries))
	}
	if !entries[0].Pending() {
		t.Fatalf("expected seeded entry to be pending")
	}
}

func TestSelectionService_Lock_RejectsGolferBurnedElsewhere(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, selRepo, ledRepo := newSelectionServiceForTest(t, now)

	// Both drafts are legal while nothing is locked.
	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Farmers Open", Golfer: "Scottie Scheffler"}); err != nil {
		t.Fatalf("submit first: %v", err)
	}
	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Desert Classic", Golfer: "scottie scheffler"}); err != nil {
		t.Fatalf("submit second: %v", err)
	}

	if _, _, err := svc.Lock(context.Background(), "u1", "Farmers Open"); err != nil {
		t.Fatalf("lock first: %v", err)
	}

	_, _, err := svc.Lock(context.Background(), "u1", "Desert Classic")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for burned golfer, got %v", err)
	}
	if !strings.Contains(err.Error(), "Farmers Open") {
		t.Fatalf("expected error to name the prior tournament, got %q", err.Error())
	}

	locked, err := selRepo.ListLockedByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list locked: %v", err)
	}
	if len(locked) != 1 || locked[0].Tournament != "Farmers Open" {
		t.Fatalf("expected only the first pick locked, got %+v", locked)
	}

	entries, err := ledRepo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list ledger entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(entries))
	}
}

func TestSelectionService_Lock_MissingPick(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSelectionServiceForTest(t, now)

	_, _, err := svc.Lock(context.Background(), "u1", "Desert Classic")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSelectionService_AutoLock_LocksStartedTournaments(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, selRepo, _ := newSelectionServiceForTest(t, now)

	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Farmers Open", Golfer: "Scottie Scheffler"}); err != nil {
		t.Fatalf("submit past: %v", err)
	}
	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Desert Classic", Golfer: "Rory McIlroy"}); err != nil {
		t.Fatalf("submit future: %v", err)
	}

	count, err := svc.AutoLockPastTournaments(context.Background())
	if err != nil {
		t.Fatalf("autolock: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 locked selection, got %d", count)
	}

	locked, err := selRepo.ListLockedByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list locked: %v", err)
	}
	if len(locked) != 1 || locked[0].Tournament != "Farmers Open" {
		t.Fatalf("unexpected locked selections: %+v", locked)
	}
}

func TestSelectionService_AutoLock_LeavesConflictingPickDrafted(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, selRepo, ledRepo := newSelectionServiceForTest(t, now)

	// u1 drafts the golfer for the started tournament first, then burns the
	// same golfer by locking a pick at a later tournament.
	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Farmers Open", Golfer: "Scottie Scheffler"}); err != nil {
		t.Fatalf("submit started: %v", err)
	}
	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Desert Classic", Golfer: "SCOTTIE SCHEFFLER"}); err != nil {
		t.Fatalf("submit later: %v", err)
	}
	if _, _, err := svc.Lock(context.Background(), "u1", "Desert Classic"); err != nil {
		t.Fatalf("lock later: %v", err)
	}

	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u2", Tournament: "Farmers Open", Golfer: "Rory McIlroy"}); err != nil {
		t.Fatalf("submit clean pick: %v", err)
	}

	count, err := svc.AutoLockPastTournaments(context.Background())
	if err != nil {
		t.Fatalf("autolock: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the clean pick to lock, got %d", count)
	}

	conflicted, exists, err := selRepo.GetByUserAndTournament(context.Background(), "u1", "Farmers Open")
	if err != nil || !exists {
		t.Fatalf("get conflicted pick: exists=%v err=%v", exists, err)
	}
	if conflicted.IsLocked {
		t.Fatalf("expected conflicted pick to stay drafted, got %+v", conflicted)
	}

	entries, err := ledRepo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list ledger entries: %v", err)
	}
	if len(entries) != 1 || !strings.EqualFold(entries[0].Tournament, "Desert Classic") {
		t.Fatalf("expected only the locked pick in the ledger, got %+v", entries)
	}
}

func TestSelectionService_AutoLock_SkipsWithinInterval(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSelectionServiceForTest(t, now)

	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u1", Tournament: "Farmers Open", Golfer: "Scottie Scheffler"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.AutoLockPastTournaments(context.Background()); err != nil {
		t.Fatalf("first sweep: %v", err)
	}

	// Second call inside the interval must short-circuit even if picks exist.
	if _, err := svc.Submit(context.Background(), SubmitSelectionInput{UserID: "u2", Tournament: "Desert Classic", Golfer: "Rory McIlroy"}); err != nil {
		t.Fatalf("submit second user: %v", err)
	}
	count, err := svc.AutoLockPastTournaments(context.Background())
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected skipped sweep to report 0, got %d", count)
	}
}
