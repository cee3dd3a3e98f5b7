package ledger

import "context"

// Repository exposes scoring ledger persistence operations.
type Repository interface {
	// ListByUser returns the user's entries in draft order.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	List(ctx context.Context) ([]Entry, error)
	// ListPendingByTournament returns entries for the tournament that have
	// no recorded result yet.
	ListPendingByTournament(ctx context.Context, tournament string) ([]Entry, error)
	// ApplyResults writes the updates in one transaction. Entries that
	// already carry a result are left untouched.
	ApplyResults(ctx context.Context, updates []ResultUpdate) error
	// ClearSeason wipes all entries and all selections in one transaction.
	ClearSeason(ctx context.Context) error
}

// ResultsProvider serves the raw weekly result rows for a tournament.
type ResultsProvider interface {
	ListResults(ctx context.Context, tournament string) ([]ResultRow, error)
}
