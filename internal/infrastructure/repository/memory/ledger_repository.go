package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/openfairway/one-and-done/internal/domain/ledger"
)

type LedgerRepository struct {
	mu         sync.RWMutex
	items      map[string]ledger.Entry
	order      *tournamentOrder
	selections *SelectionRepository
}

func NewLedgerRepository(order *tournamentOrder) *LedgerRepository {
	if order == nil {
		order = newTournamentOrder()
	}
	return &LedgerRepository{
		items: make(map[string]ledger.Entry),
		order: order,
	}
}

func (r *LedgerRepository) ListByUser(_ context.Context, userID string) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ledger.Entry, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, cloneEntry(item))
		}
	}
	r.order.sortEntries(out)
	return out, nil
}

func (r *LedgerRepository) List(_ context.Context) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ledger.Entry, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneEntry(item))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Tournament < out[j].Tournament
	})
	return out, nil
}

func (r *LedgerRepository) ListPendingByTournament(_ context.Context, tournament string) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ledger.Entry, 0)
	for _, item := range r.items {
		if strings.EqualFold(item.Tournament, tournament) && item.Finish == nil {
			out = append(out, cloneEntry(item))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *LedgerRepository) ApplyResults(_ context.Context, updates []ledger.ResultUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, update := range updates {
		key := entryKey(update.UserID, update.Tournament)
		item, ok := r.items[key]
		if !ok || item.Finish != nil {
			continue
		}
		finish := update.Finish
		earnings := update.Earnings
		item.Finish = &finish
		item.Earnings = &earnings
		r.items[key] = item
	}
	return nil
}

func (r *LedgerRepository) ClearSeason(_ context.Context) error {
	r.mu.Lock()
	r.items = make(map[string]ledger.Entry)
	r.mu.Unlock()

	if r.selections != nil {
		r.selections.ClearAll()
	}
	return nil
}

// ensureEntry seeds a pending entry for a locked pick. Reports whether a
// new entry was created.
func (r *LedgerRepository) ensureEntry(userID, tournament, golfer string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey(userID, tournament)
	if _, exists := r.items[key]; exists {
		return false
	}
	r.items[key] = ledger.Entry{
		UserID:     userID,
		Tournament: tournament,
		Golfer:     golfer,
	}
	return true
}

func entryKey(userID, tournament string) string {
	return userID + "::" + strings.ToLower(tournament)
}

func cloneEntry(item ledger.Entry) ledger.Entry {
	copied := item
	if item.Finish != nil {
		finish := *item.Finish
		copied.Finish = &finish
	}
	if item.Earnings != nil {
		earnings := *item.Earnings
		copied.Earnings = &earnings
	}
	return copied
}
