package httpapi

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/openfairway/one-and-done/internal/domain/selection"
	"github.com/openfairway/one-and-done/internal/usecase"
)

func (h *Handler) SubmitSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSelection")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitSelectionRequest
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

	item, err := h.selectionService.Submit(ctx, usecase.SubmitSelectionInput{
		UserID:     principal.UserID,
		Tournament: req.Tournament,
		Golfer:     req.Golfer,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit selection failed", "user_id", principal.UserID, "tournament", req.Tournament, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(item))
}

func (h *Handler) LockSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockSelection")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req lockSelectionRequest
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

	item, created, err := h.selectionService.Lock(ctx, principal.UserID, req.Tournament)
	if err != nil {
		h.logger.WarnContext(ctx, "lock selection failed", "user_id", principal.UserID, "tournament", req.Tournament, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lockResultDTO{
		Selection:     selectionToDTO(item),
		LedgerCreated: created,
	})
}

func (h *Handler) ListSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSelections")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	items, err := h.selectionService.ListByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list selections failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]selectionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, selectionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

type submitSelectionRequest struct {
	Tournament string `json:"tournament" validate:"required,max=200"`
	Golfer     string `json:"golfer" validate:"required,max=200"`
}

type lockSelectionRequest struct {
	Tournament string `json:"tournament" validate:"required,max=200"`
}

type selectionDTO struct {
	Tournament string `json:"tournament"`
	Golfer     string `json:"golfer"`
	Status     string `json:"status"`
	PickedAt   string `json:"pickedAt"`
	LockedAt   string `json:"lockedAt,omitempty"`
}

type lockResultDTO struct {
	Selection     selectionDTO `json:"selection"`
	LedgerCreated bool         `json:"ledgerCreated"`
}

func selectionToDTO(item selection.Selection) selectionDTO {
	dto := selectionDTO{
		Tournament: item.Tournament,
		Golfer:     item.Golfer,
		Status:     string(item.Status()),
		PickedAt:   item.PickedAt.UTC().Format(time.RFC3339),
	}
	if item.LockedAt != nil {
		dto.LockedAt = item.LockedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
