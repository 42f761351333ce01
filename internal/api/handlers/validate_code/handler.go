package validate_code

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStorageFailure     = "не удалось проверить код, попробуйте позже"
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

// Handle POST /api/v1/invitations/validate
// Недействительный код не ошибка запроса: ответ 200 с success=false и причиной в message
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invitations/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	outcome, err := h.service.Validate(r.Context(), req.Code)
	if err != nil {
		h.logger.Error("POST /invitations/validate - Storage failure: %v", err)
		handlers.RespondServiceUnavailable(w, msgStorageFailure)
		return
	}

	h.logger.Info("POST /invitations/validate - Code checked: code=%s, success=%t", outcome.Code, outcome.Success)
	handlers.RespondJSON(w, http.StatusOK, outcome)
}
