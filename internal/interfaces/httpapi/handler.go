package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/openfairway/one-and-done/internal/platform/logging"
	"github.com/openfairway/one-and-done/internal/usecase"
)

type Handler struct {
	selectionService *usecase.SelectionService
	ledgerService    *usecase.LedgerService
	standingsService *usecase.StandingsService
	scheduleService  *usecase.ScheduleService
	profileService   *usecase.ProfileService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	selectionService *usecase.SelectionService,
	ledgerService *usecase.LedgerService,
	standingsService *usecase.StandingsService,
	scheduleService *usecase.ScheduleService,
	profileService *usecase.ProfileService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		selectionService: selectionService,
		ledgerService:    ledgerService,
		standingsService: standingsService,
		scheduleService:  scheduleService,
		profileService:   profileService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSchedule")
	defer span.End()

	tournaments, err := h.scheduleService.ListTournaments(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list schedule failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		items = append(items, tournamentDTO{
			Name:    t.Name,
			StartAt: t.StartAt.UTC().Format(time.RFC3339),
			Purse:   t.Purse,
			Locked:  t.Locked,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankings")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	players, err := h.scheduleService.ListRankings(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list rankings failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]rankingDTO, 0, len(players))
	for _, p := range players {
		items = append(items, rankingDTO{
			Rank:           p.Rank,
			Name:           p.Name,
			Country:        p.Country,
			Tour:           p.Tour,
			Availability:   p.Availability,
			Used:           p.Used,
			UsedTournament: p.UsedTournament,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCurrentField(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentField")
	defer span.End()

	players, err := h.scheduleService.CurrentField(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get field failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fieldPlayerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, fieldPlayerDTO{
			Name:    p.Name,
			Country: p.Country,
			Amateur: p.Amateur,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type tournamentDTO struct {
	Name    string `json:"name"`
	StartAt string `json:"startAt"`
	Purse   string `json:"purse"`
	Locked  bool   `json:"locked"`
}

type rankingDTO struct {
	Rank           int    `json:"rank"`
	Name           string `json:"name"`
	Country        string `json:"country"`
	Tour           string `json:"tour"`
	Availability   int    `json:"availability"`
	Used           bool   `json:"used"`
	UsedTournament string `json:"usedTournament,omitempty"`
}

type fieldPlayerDTO struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Amateur bool   `json:"amateur"`
}
