package code_history

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations"
)

const (
	msgMalformed = "некорректный формат кода"
	msgNotFound  = "код не найден"
)

type Handler struct {
	service InvitationService
	logger  Logger
}

func NewHandler(service InvitationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/invitations/{code}/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	result, err := h.service.History(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, invitations.ErrInvalidInput):
			h.logger.Warn("GET /invitations/{code}/events - Malformed code: code=%q", code)
			handlers.RespondBadRequest(w, msgMalformed)

		case errors.Is(err, invitations.ErrCodeNotFound):
			h.logger.Warn("GET /invitations/{code}/events - Code not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /invitations/{code}/events - Failed to get history: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /invitations/{code}/events - History retrieved: code=%s, events=%d", result.Code, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, result)
}
