package httpapi

import (
	"fmt"
	"net/http"

	"github.com/openfairway/one-and-done/internal/domain/ledger"
	"github.com/openfairway/one-and-done/internal/usecase"
)

func (h *Handler) ListLedger(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLedger")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entries, err := h.ledgerService.ListEntries(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list ledger failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]ledgerEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ledgerEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type ledgerEntryDTO struct {
	Tournament string   `json:"tournament"`
	Golfer     string   `json:"golfer"`
	Finish     *string  `json:"finish"`
	Earnings   *float64 `json:"earnings"`
	Pending    bool     `json:"pending"`
}

func ledgerEntryToDTO(entry ledger.Entry) ledgerEntryDTO {
	dto := ledgerEntryDTO{
		Tournament: entry.Tournament,
		Golfer:     entry.Golfer,
		Finish:     entry.Finish,
		Pending:    entry.Pending(),
	}
	if entry.Earnings != nil {
		dollars := float64(*entry.Earnings) / 100.0
		dto.Earnings = &dollars
	}
	return dto
}
