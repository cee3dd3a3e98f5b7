package schedule

import "context"

// Provider serves the season schedule ordered by start time.
type Provider interface {
	ListTournaments(ctx context.Context) ([]Tournament, error)
}
