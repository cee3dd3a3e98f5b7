package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openfairway/one-and-done/internal/domain/rankings"
	"github.com/openfairway/one-and-done/internal/domain/schedule"
	"github.com/openfairway/one-and-done/internal/domain/selection"
	"github.com/openfairway/one-and-done/internal/platform/logging"
)

// TournamentStatus is a schedule row annotated with its lock state for now.
type TournamentStatus struct {
	schedule.Tournament
	Locked bool
}

// FieldPlayer is one golfer in the current tournament field.
type FieldPlayer struct {
	Name    string
	Country string
	Amateur bool
}

// FieldProvider serves the entry list of the current tournament.
type FieldProvider interface {
	ListField(ctx context.Context) ([]FieldPlayer, error)
}

// ScheduleService serves the season schedule and the ranking page, both of
// which depend on selection state.
type ScheduleService struct {
	scheduleProv  schedule.Provider
	rankingsProv  rankings.Provider
	fieldProv     FieldProvider
	selectionRepo selection.Repository
	selectionSvc  *SelectionService
	logger        *logging.Logger
	now           func() time.Time
}

func NewScheduleService(
	scheduleProv schedule.Provider,
	rankingsProv rankings.Provider,
	fieldProv FieldProvider,
	selectionRepo selection.Repository,
	selectionSvc *SelectionService,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		scheduleProv:  scheduleProv,
		rankingsProv:  rankingsProv,
		fieldProv:     fieldProv,
		selectionRepo: selectionRepo,
		selectionSvc:  selectionSvc,
		logger:        logger,
		now:           time.Now,
	}
}

// ListTournaments returns the schedule ordered by start time. Tournaments
// that have started are flagged locked, and the auto-lock sweep runs first
// so stored picks catch up with the calendar. A sweep failure does not
// block the schedule.
func (s *ScheduleService) ListTournaments(ctx context.Context) ([]TournamentStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListTournaments")
	defer span.End()

	if s.selectionSvc != nil {
		if _, err := s.selectionSvc.AutoLockPastTournaments(ctx); err != nil {
			s.logger.WarnContext(ctx, "autolock sweep failed", "error", err)
		}
	}

	tournaments, err := s.scheduleProv.ListTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	now := s.now().UTC()
	out := make([]TournamentStatus, 0, len(tournaments))
	for _, item := range tournaments {
		out = append(out, TournamentStatus{
			Tournament: item,
			Locked:     item.Started(now),
		})
	}
	return out, nil
}

// ListRankings returns the world rankings annotated with the caller's pick
// history: a golfer burned on a locked pick is flagged used and shown as
// unavailable.
func (s *ScheduleService) ListRankings(ctx context.Context, userID string) ([]rankings.AnnotatedPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListRankings")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	players, err := s.rankingsProv.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rankings: %w", err)
	}

	locked, err := s.selectionRepo.ListLockedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list locked selections: %w", err)
	}
	usedBy := make(map[string]string, len(locked))
	for _, item := range locked {
		usedBy[strings.ToLower(strings.TrimSpace(item.Golfer))] = item.Tournament
	}

	out := make([]rankings.AnnotatedPlayer, 0, len(players))
	for _, player := range players {
		annotated := rankings.AnnotatedPlayer{Player: player}
		if tournament, used := usedBy[strings.ToLower(strings.TrimSpace(player.Name))]; used {
			annotated.Used = true
			annotated.UsedTournament = tournament
			annotated.Availability = 0
		}
		out = append(out, annotated)
	}
	return out, nil
}

// CurrentField returns the entry list of the current tournament from the
// field feed.
func (s *ScheduleService) CurrentField(ctx context.Context) ([]FieldPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.CurrentField")
	defer span.End()

	if s.fieldProv == nil {
		return nil, fmt.Errorf("%w: field feed is not configured", ErrDependencyUnavailable)
	}

	players, err := s.fieldProv.ListField(ctx)
	if err != nil {
		return nil, fmt.Errorf("list field: %w", err)
	}
	return players, nil
}
