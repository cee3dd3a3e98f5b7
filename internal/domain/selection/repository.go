package selection

import (
	"context"
	"time"
)

// Repository exposes selection persistence operations.
//
// Lock and LockAllByTournament also seed the scoring ledger: a locked pick
// must always have exactly one ledger entry, so both writes happen in the
// same transaction.
type Repository interface {
	GetByUserAndTournament(ctx context.Context, userID, tournament string) (Selection, bool, error)
	// ListByUser returns the user's selections in draft order (the order
	// tournaments first received a pick from anyone).
	ListByUser(ctx context.Context, userID string) ([]Selection, error)
	// ListLockedByUser returns only locked selections, in draft order.
	ListLockedByUser(ctx context.Context, userID string) ([]Selection, error)
	// Upsert stores a drafted (unlocked) pick, replacing any previous
	// unlocked pick for the same tournament.
	Upsert(ctx context.Context, item Selection) error
	// EnsureTournamentOrder assigns the tournament its draft-order slot the
	// first time anyone picks for it. Later calls are no-ops.
	EnsureTournamentOrder(ctx context.Context, tournament string) error
	// Lock finalizes the user's pick for the tournament and creates the
	// ledger entry if one does not exist yet. Locking an already locked
	// selection is a no-op. The returned bool reports whether a ledger
	// entry was created by this call.
	Lock(ctx context.Context, userID, tournament string, lockedAt time.Time) (Selection, bool, error)
	// LockAllByTournament locks every unlocked selection for the tournament
	// and returns how many were newly locked.
	LockAllByTournament(ctx context.Context, tournament string, lockedAt time.Time) (int, error)
}
