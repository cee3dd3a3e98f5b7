package rankings

import "context"

// Provider serves the current world rankings ordered by rank.
type Provider interface {
	ListPlayers(ctx context.Context) ([]Player, error)
}
