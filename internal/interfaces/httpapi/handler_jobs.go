package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/openfairway/one-and-done/internal/usecase"
)

func (h *Handler) RunReconcileJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileJob")
	defer span.End()

	var req reconcileJobRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.ledgerService.ReconcileFromProvider(ctx, req.Tournament)
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile job failed", "tournament", req.Tournament, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reconcileReportDTO{
		Tournament: report.Tournament,
		Updated:    report.Updated,
		Defaulted:  report.Defaulted,
		Unmatched:  append([]string(nil), report.Unmatched...),
	})
}

func (h *Handler) RunAutoLockJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAutoLockJob")
	defer span.End()

	count, err := h.selectionService.AutoLockPastTournaments(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "autolock job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"locked": count})
}

func (h *Handler) RunClearSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunClearSeasonJob")
	defer span.End()

	if err := h.ledgerService.ClearSeason(ctx); err != nil {
		h.logger.ErrorContext(ctx, "clear season job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cleared"})
}

type reconcileJobRequest struct {
	Tournament string `json:"tournament" validate:"required,max=200"`
}

type reconcileReportDTO struct {
	Tournament string   `json:"tournament"`
	Updated    int      `json:"updated"`
	Defaulted  int      `json:"defaulted"`
	Unmatched  []string `json:"unmatched,omitempty"`
}
