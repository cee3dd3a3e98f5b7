package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/openfairway/one-and-done/internal/domain/ledger"
	"github.com/openfairway/one-and-done/internal/domain/schedule"
	"github.com/openfairway/one-and-done/internal/infrastructure/repository/memory"
	ledgermock "github.com/openfairway/one-and-done/internal/mocks/domain/ledger"
	schedulemock "github.com/openfairway/one-and-done/internal/mocks/domain/schedule"
	"github.com/openfairway/one-and-done/internal/platform/logging"
)

func TestLedgerService_ReconcileFromProvider_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	selRepo, ledRepo := memory.NewStores()
	seedLockedPick(t, selRepo, "u1", "Farmers Open", "Scottie Scheffler")

	feed := ledgermock.NewResultsProvider(t)
	feed.
		On("ListResults", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "Farmers Open").
		Return([]ledger.ResultRow{
			{Golfer: "Scottie Scheffler", Finish: "2", Earnings: "$1,078,000"},
		}, nil).
		Once()

	service := NewLedgerService(ledRepo, feed, logging.NewNop())

	report, err := service.ReconcileFromProvider(ctx, "Farmers Open")
	if err != nil {
		t.Fatalf("reconcile from provider: %v", err)
	}
	if report.Updated != 1 || report.Defaulted != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestLedgerService_ReconcileFromProvider_FeedErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ledRepo := memory.NewStores()

	feed := ledgermock.NewResultsProvider(t)
	feed.
		On("ListResults", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "Farmers Open").
		Return(nil, errors.New("feed unreachable")).
		Once()

	service := NewLedgerService(ledRepo, feed, logging.NewNop())

	_, err := service.ReconcileFromProvider(ctx, "Farmers Open")
	if err == nil {
		t.Fatalf("expected feed error to surface")
	}
}

func TestSelectionService_Submit_ScheduleProviderUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	selRepo, _ := memory.NewStores()
	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)

	scheduleProv := schedulemock.NewProvider(t)
	scheduleProv.
		On("ListTournaments", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return([]schedule.Tournament{
			{Name: "Desert Classic", StartAt: now.Add(72 * time.Hour), Purse: "$9,200,000"},
		}, nil)

	service := NewSelectionService(selRepo, scheduleProv, logging.NewNop())
	service.now = func() time.Time { return now }

	got, err := service.Submit(ctx, SubmitSelectionInput{UserID: "u1", Tournament: "Desert Classic", Golfer: "Rory McIlroy"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Golfer != "Rory McIlroy" {
		t.Fatalf("unexpected selection: %+v", got)
	}
}
