package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openfairway/one-and-done/internal/domain/ledger"
	"github.com/openfairway/one-and-done/internal/domain/user"
	"github.com/openfairway/one-and-done/internal/infrastructure/repository/memory"
)

func seedStandingsFixture(t *testing.T) (*StandingsService, *memory.LedgerRepository) {
	t.Helper()

	selRepo, ledRepo := memory.NewStores()
	userRepo := memory.NewUserRepository([]user.User{
		{ID: "u1", Email: "alice@example.com", DisplayName: "Alice", CreatedAt: time.Now().UTC()},
		{ID: "u2", Email: "bob@example.com", DisplayName: "Bob", CreatedAt: time.Now().UTC()},
		{ID: "u3", Email: "cara@example.com", DisplayName: "Cara", CreatedAt: time.Now().UTC()},
		{ID: "u4", Email: "dave@example.com", DisplayName: "Dave", CreatedAt: time.Now().UTC()},
	})

	seedLockedPick(t, selRepo, "u1", "Farmers Open", "Scottie Scheffler")
	seedLockedPick(t, selRepo, "u2", "Farmers Open", "Rory McIlroy")
	seedLockedPick(t, selRepo, "u3", "Farmers Open", "Max Homa")

	err := ledRepo.ApplyResults(context.Background(), []ledger.ResultUpdate{
		{UserID: "u1", Tournament: "Farmers Open", Finish: "1", Earnings: 50000},
		{UserID: "u2", Tournament: "Farmers Open", Finish: "T5", Earnings: 50000},
		{UserID: "u3", Tournament: "Farmers Open", Finish: "12", Earnings: 30000},
	})
	if err != nil {
		t.Fatalf("apply results: %v", err)
	}

	return NewStandingsService(ledRepo, userRepo), ledRepo
}

func TestStandingsService_ComputeStandings(t *testing.T) {
	t.Parallel()

	svc, _ := seedStandingsFixture(t)

	rows, err := svc.ComputeStandings(context.Background())
	if err != nil {
		t.Fatalf("compute standings: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected every user in the standings, got %d rows", len(rows))
	}

	// Tied totals share a rank and sort by display name.
	if rows[0].UserID != "u1" || rows[0].Rank != 1 || rows[0].TotalEarnings != 50000 {
		t.Fatalf("unexpected rank 1 row: %+v", rows[0])
	}
	if rows[1].UserID != "u2" || rows[1].Rank != 1 {
		t.Fatalf("expected tied leader at rank 1, got %+v", rows[1])
	}
	if rows[2].UserID != "u3" || rows[2].Rank != 2 {
		t.Fatalf("expected next total at rank 2, got %+v", rows[2])
	}
	if rows[3].UserID != "u4" || rows[3].Rank != 3 || rows[3].TotalEarnings != 0 {
		t.Fatalf("expected zero-earnings user included last, got %+v", rows[3])
	}

	if rows[0].Wins != 1 || rows[0].TopTens != 1 {
		t.Fatalf("expected win and top ten for outright winner, got %+v", rows[0])
	}
	if rows[1].Wins != 0 || rows[1].TopTens != 1 {
		t.Fatalf("expected top ten without win for T5, got %+v", rows[1])
	}
	if rows[2].Wins != 0 || rows[2].TopTens != 0 || rows[2].EventsPlayed != 1 {
		t.Fatalf("expected plain finish counted as event only, got %+v", rows[2])
	}
}

func TestStandingsService_PendingEntriesDoNotCount(t *testing.T) {
	t.Parallel()

	selRepo, ledRepo := memory.NewStores()
	userRepo := memory.NewUserRepository([]user.User{
		{ID: "u1", Email: "alice@example.com", DisplayName: "Alice"},
	})
	seedLockedPick(t, selRepo, "u1", "Desert Classic", "Rory McIlroy")

	svc := NewStandingsService(ledRepo, userRepo)
	rows, err := svc.ComputeStandings(context.Background())
	if err != nil {
		t.Fatalf("compute standings: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].TotalEarnings != 0 || rows[0].EventsPlayed != 0 {
		t.Fatalf("expected pending entry to count for nothing, got %+v", rows[0])
	}
}

func TestStandingsService_ComputeSnapshot(t *testing.T) {
	t.Parallel()

	svc, _ := seedStandingsFixture(t)

	snap, err := svc.ComputeSnapshot(context.Background(), "u3")
	if err != nil {
		t.Fatalf("compute snapshot: %v", err)
	}
	if snap.Rank != 2 || snap.TotalEarnings != 30000 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.BehindLeader != 20000 {
		t.Fatalf("expected 20000 behind leader, got %+v", snap)
	}

	_, err = svc.ComputeSnapshot(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}

	_, err = svc.ComputeSnapshot(context.Background(), " ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank user, got %v", err)
	}
}
