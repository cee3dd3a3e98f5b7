package httpapi

import (
	"fmt"
	"net/http"

	"github.com/openfairway/one-and-done/internal/domain/standings"
	"github.com/openfairway/one-and-done/internal/usecase"
)

func (h *Handler) ListLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaderboard")
	defer span.End()

	rows, err := h.standingsService.ComputeStandings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "compute standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingsRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingsRowToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSnapshot")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	snapshot, err := h.standingsService.ComputeSnapshot(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "compute snapshot failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotDTO{
		UserID:        snapshot.UserID,
		DisplayName:   snapshot.DisplayName,
		Rank:          snapshot.Rank,
		TotalEarnings: centsToDollars(snapshot.TotalEarnings),
		BehindLeader:  centsToDollars(snapshot.BehindLeader),
		Wins:          snapshot.Wins,
		TopTens:       snapshot.TopTens,
		EventsPlayed:  snapshot.EventsPlayed,
	})
}

type standingsRowDTO struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"userId"`
	DisplayName   string  `json:"displayName"`
	TotalEarnings float64 `json:"totalEarnings"`
	Wins          int     `json:"wins"`
	TopTens       int     `json:"topTens"`
	EventsPlayed  int     `json:"eventsPlayed"`
}

type snapshotDTO struct {
	UserID        string  `json:"userId"`
	DisplayName   string  `json:"displayName"`
	Rank          int     `json:"rank"`
	TotalEarnings float64 `json:"totalEarnings"`
	BehindLeader  float64 `json:"behindLeader"`
	Wins          int     `json:"wins"`
	TopTens       int     `json:"topTens"`
	EventsPlayed  int     `json:"eventsPlayed"`
}

func standingsRowToDTO(row standings.Row) standingsRowDTO {
	return standingsRowDTO{
		Rank:          row.Rank,
		UserID:        row.UserID,
		DisplayName:   row.DisplayName,
		TotalEarnings: centsToDollars(row.TotalEarnings),
		Wins:          row.Wins,
		TopTens:       row.TopTens,
		EventsPlayed:  row.EventsPlayed,
	}
}

func centsToDollars(cents int64) float64 {
	return float64(cents) / 100.0
}
