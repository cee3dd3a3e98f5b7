package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/openfairway/one-and-done/internal/domain/ledger"
	"github.com/openfairway/one-and-done/internal/domain/standings"
	"github.com/openfairway/one-and-done/internal/domain/user"
)

// StandingsService aggregates the scoring ledger into the season leaderboard.
type StandingsService struct {
	ledgerRepo ledger.Repository
	userRepo   user.Repository
}

func NewStandingsService(ledgerRepo ledger.Repository, userRepo user.Repository) *StandingsService {
	return &StandingsService{
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
	}
}

// ComputeStandings ranks every user by total earnings. Ties share a rank and
// the next distinct total takes the following rank. Users with equal totals
// are ordered by display name, then id, so the output is stable.
func (s *StandingsService) ComputeStandings(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ComputeStandings")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	entries, err := s.ledgerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}

	byUser := make(map[string]*standings.Row, len(users))
	rows := make([]standings.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, standings.Row{UserID: u.ID, DisplayName: u.DisplayName})
	}
	for idx := range rows {
		byUser[rows[idx].UserID] = &rows[idx]
	}

	for _, entry := range entries {
		row, ok := byUser[entry.UserID]
		if !ok {
			continue
		}
		if entry.Earnings != nil {
			row.TotalEarnings += *entry.Earnings
		}
		if entry.Finish == nil {
			continue
		}
		row.EventsPlayed++
		class := ledger.ClassifyFinish(*entry.Finish)
		if class.Win {
			row.Wins++
		}
		if class.TopTen {
			row.TopTens++
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalEarnings != rows[j].TotalEarnings {
			return rows[i].TotalEarnings > rows[j].TotalEarnings
		}
		if rows[i].DisplayName != rows[j].DisplayName {
			return rows[i].DisplayName < rows[j].DisplayName
		}
		return rows[i].UserID < rows[j].UserID
	})

	lastEarnings := int64(0)
	rank := 0
	for idx := range rows {
		if idx == 0 || rows[idx].TotalEarnings != lastEarnings {
			rank++
			lastEarnings = rows[idx].TotalEarnings
		}
		rows[idx].Rank = rank
	}

	return rows, nil
}

// ComputeSnapshot returns one user's season position, consistent with
// ComputeStandings.
func (s *StandingsService) ComputeSnapshot(ctx context.Context, userID string) (standings.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ComputeSnapshot")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return standings.Snapshot{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	rows, err := s.ComputeStandings(ctx)
	if err != nil {
		return standings.Snapshot{}, err
	}

	var leaderTotal int64
	if len(rows) > 0 {
		leaderTotal = rows[0].TotalEarnings
	}

	for _, row := range rows {
		if row.UserID != userID {
			continue
		}
		return standings.Snapshot{
			UserID:        row.UserID,
			DisplayName:   row.DisplayName,
			Rank:          row.Rank,
			TotalEarnings: row.TotalEarnings,
			BehindLeader:  leaderTotal - row.TotalEarnings,
			Wins:          row.Wins,
			TopTens:       row.TopTens,
			EventsPlayed:  row.EventsPlayed,
		}, nil
	}

	return standings.Snapshot{}, fmt.Errorf("%w: user %s has no standings row", ErrNotFound, userID)
}
