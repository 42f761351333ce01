package redeem_code

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations"
	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMalformed          = "некорректный формат кода"
	msgNotFound           = "код не найден"
	msgAlreadyUsed        = "код уже использован"
	msgExpired            = "срок действия кода истёк"
	msgVenueHeld          = "у площадки уже есть администратор, используйте передачу площадки"
	msgStorageFailure     = "не удалось активировать код, попробуйте позже"
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

// Handle POST /api/v1/invitations/redeem
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /invitations/redeem - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.RedeemCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invitations/redeem - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Redeem(r.Context(), req.Code, adminID)
	if err != nil {
		switch {
		case errors.Is(err, invitations.ErrInvalidInput):
			h.logger.Warn("POST /invitations/redeem - Malformed code: admin_id=%d", adminID)
			handlers.RespondBadRequest(w, msgMalformed)

		case errors.Is(err, invitations.ErrCodeNotFound):
			h.logger.Warn("POST /invitations/redeem - Code not found: admin_id=%d", adminID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invitations.ErrCodeAlreadyUsed):
			h.logger.Warn("POST /invitations/redeem - Code already used: admin_id=%d", adminID)
			handlers.RespondConflict(w, msgAlreadyUsed)

		case errors.Is(err, invitations.ErrVenueHeld):
			h.logger.Warn("POST /invitations/redeem - Venue held by another admin: admin_id=%d", adminID)
			handlers.RespondConflict(w, msgVenueHeld)

		case errors.Is(err, invitations.ErrCodeExpired):
			h.logger.Warn("POST /invitations/redeem - Code expired: admin_id=%d", adminID)
			handlers.RespondError(w, http.StatusGone, msgExpired)

		case errors.Is(err, invitations.ErrInternal):
			h.logger.Error("POST /invitations/redeem - Storage failure: admin_id=%d, error=%v", adminID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("POST /invitations/redeem - Failed to redeem code: admin_id=%d, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invitations/redeem - Code redeemed: code=%s, venue_id=%d, admin_id=%d", result.Code, result.VenueID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
