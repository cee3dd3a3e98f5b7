package cache

import (
	"context"

	"github.com/openfairway/one-and-done/internal/domain/rankings"
	"github.com/openfairway/one-and-done/internal/domain/schedule"
	basecache "github.com/openfairway/one-and-done/internal/platform/cache"
)

// ScheduleProvider caches the season schedule. Sheet reads are I/O bound
// and the schedule only changes between refresh cycles.
type ScheduleProvider struct {
	next  schedule.Provider
	cache *basecache.Store
}

func NewScheduleProvider(next schedule.Provider, cache *basecache.Store) *ScheduleProvider {
	return &ScheduleProvider{next: next, cache: cache}
}

func (p *ScheduleProvider) ListTournaments(ctx context.Context) ([]schedule.Tournament, error) {
	v, err := p.cache.GetOrLoad(ctx, "schedule:list", func(ctx context.Context) (any, error) {
		items, err := p.next.ListTournaments(ctx)
		if err != nil {
			return nil, err
		}
		return append([]schedule.Tournament(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]schedule.Tournament)
	return append([]schedule.Tournament(nil), items...), nil
}

type RankingsProvider struct {
	next  rankings.Provider
	cache *basecache.Store
}

func NewRankingsProvider(next rankings.Provider, cache *basecache.Store) *RankingsProvider {
	return &RankingsProvider{next: next, cache: cache}
}

func (p *RankingsProvider) ListPlayers(ctx context.Context) ([]rankings.Player, error) {
	v, err := p.cache.GetOrLoad(ctx, "rankings:list", func(ctx context.Context) (any, error) {
		items, err := p.next.ListPlayers(ctx)
		if err != nil {
			return nil, err
		}
		return append([]rankings.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]rankings.Player)
	return append([]rankings.Player(nil), items...), nil
}
