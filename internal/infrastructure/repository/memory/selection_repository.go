package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/openfairway/one-and-done/internal/domain/ledger"
	"github.com/openfairway/one-and-done/internal/domain/selection"
)

// tournamentOrder tracks the order tournaments first received a pick.
type tournamentOrder struct {
	mu  sync.Mutex
	seq map[string]int
}

func newTournamentOrder() *tournamentOrder {
	return &tournamentOrder{seq: make(map[string]int)}
}

func (o *tournamentOrder) ensure(tournament string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := strings.ToLower(tournament)
	if _, exists := o.seq[key]; !exists {
		o.seq[key] = len(o.seq) + 1
	}
}

func (o *tournamentOrder) position(tournament string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	pos, ok := o.seq[strings.ToLower(tournament)]
	if !ok {
		return int(^uint(0) >> 1)
	}
	return pos
}

func (o *tournamentOrder) sortSelections(items []selection.Selection) {
	sort.SliceStable(items, func(i, j int) bool {
		return o.position(items[i].Tournament) < o.position(items[j].Tournament)
	})
}

func (o *tournamentOrder) sortEntries(items []ledger.Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		return o.position(items[i].Tournament) < o.position(items[j].Tournament)
	})
}

type SelectionRepository struct {
	mu     sync.RWMutex
	items  map[string]selection.Selection
	order  *tournamentOrder
	ledger *LedgerRepository
}

// NewSelectionRepository builds a selection store that shares a draft order
// and a ledger with its companions. A nil ledger disables ledger seeding.
func NewSelectionRepository(order *tournamentOrder, ledgerRepo *LedgerRepository) *SelectionRepository {
	if order == nil {
		order = newTournamentOrder()
	}
	return &SelectionRepository{
		items:  make(map[string]selection.Selection),
		order:  order,
		ledger: ledgerRepo,
	}
}

// NewStores builds the shared in-memory backing for selections and ledger.
func NewStores() (*SelectionRepository, *LedgerRepository) {
	order := newTournamentOrder()
	ledgerRepo := NewLedgerRepository(order)
	selectionRepo := NewSelectionRepository(order, ledgerRepo)
	ledgerRepo.selections = selectionRepo
	return selectionRepo, ledgerRepo
}

func (r *SelectionRepository) GetByUserAndTournament(_ context.Context, userID, tournament string) (selection.Selection, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[selectionKey(userID, tournament)]
	if !ok {
		return selection.Selection{}, false, nil
	}
	return cloneSelection(item), true, nil
}

func (r *SelectionRepository) ListByUser(_ context.Context, userID string) ([]selection.Selection, error) {
	return r.listByUser(userID, false), nil
}

func (r *SelectionRepository) ListLockedByUser(_ context.Context, userID string) ([]selection.Selection, error) {
	return r.listByUser(userID, true), nil
}

func (r *SelectionRepository) listByUser(userID string, lockedOnly bool) []selection.Selection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]selection.Selection, 0)
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		if lockedOnly && !item.IsLocked {
			continue
		}
		out = append(out, cloneSelection(item))
	}
	r.order.sortSelections(out)
	return out
}

func (r *SelectionRepository) Upsert(_ context.Context, item selection.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := selectionKey(item.UserID, item.Tournament)
	if existing, ok := r.items[key]; ok && existing.IsLocked {
		return nil
	}
	item.IsLocked = false
	item.LockedAt = nil
	r.items[key] = cloneSelection(item)
	return nil
}

func (r *SelectionRepository) EnsureTournamentOrder(_ context.Context, tournament string) error {
	r.order.ensure(tournament)
	return nil
}

func (r *SelectionRepository) Lock(_ context.Context, userID, tournament string, lockedAt time.Time) (selection.Selection, bool, error) {
	r.mu.Lock()
	key := selectionKey(userID, tournament)
	item, ok := r.items[key]
	if !ok {
		r.mu.Unlock()
		return selection.Selection{}, false, nil
	}
	if !item.IsLocked {
		item.IsLocked = true
		ts := lockedAt
		item.LockedAt = &ts
		r.items[key] = item
	}
	locked := cloneSelection(item)
	r.mu.Unlock()

	created := false
	if r.ledger != nil {
		created = r.ledger.ensureEntry(locked.UserID, locked.Tournament, locked.Golfer)
	}
	return locked, created, nil
}

func (r *SelectionRepository) LockAllByTournament(_ context.Context, tournament string, lockedAt time.Time) (int, error) {
	r.mu.Lock()
	lockedItems := make([]selection.Selection, 0)
	count := 0
	for key, item := range r.items {
		if !strings.EqualFold(item.Tournament, tournament) {
			continue
		}
		if !item.IsLocked {
			// A pick whose golfer is already burned elsewhere stays drafted
			// so the user can replace it.
			if r.conflictsWithLockedGolfer(item) {
				continue
			}
			item.IsLocked = true
			ts := lockedAt
			item.LockedAt = &ts
			r.items[key] = item
			count++
		}
		lockedItems = append(lockedItems, item)
	}
	r.mu.Unlock()

	if r.ledger != nil {
		for _, item := range lockedItems {
			r.ledger.ensureEntry(item.UserID, item.Tournament, item.Golfer)
		}
	}
	return count, nil
}

// conflictsWithLockedGolfer reports whether the user already locked the same
// golfer at another tournament. Callers hold r.mu.
func (r *SelectionRepository) conflictsWithLockedGolfer(candidate selection.Selection) bool {
	for _, other := range r.items {
		if other.UserID != candidate.UserID || !other.IsLocked {
			continue
		}
		if strings.EqualFold(other.Tournament, candidate.Tournament) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(other.Golfer), strings.TrimSpace(candidate.Golfer)) {
			return true
		}
	}
	return false
}

// ClearAll drops every stored selection. Season resets go through here.
func (r *SelectionRepository) ClearAll() {
	r.mu.Lock()
	r.items = make(map[string]selection.Selection)
	r.mu.Unlock()
}

func selectionKey(userID, tournament string) string {
	return userID + "::" + strings.ToLower(tournament)
}

func cloneSelection(item selection.Selection) selection.Selection {
	copied := item
	if item.LockedAt != nil {
		ts := *item.LockedAt
		copied.LockedAt = &ts
	}
	return copied
}
