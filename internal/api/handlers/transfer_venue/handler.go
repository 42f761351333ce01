package transfer_venue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations"
	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations/models"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "ID нового администратора обязателен"
	msgHolderNotFound     = "у площадки нет администратора"
	msgSameAdmin          = "площадка уже принадлежит этому администратору"
	msgStorageFailure     = "не удалось передать площадку, попробуйте позже"
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

// Handle POST /api/v1/venues/{venueId}/transfer
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/transfer - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	superAdminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /venues/{id}/transfer - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.TransferVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/transfer - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Transfer(r.Context(), venueID, req.NewAdminID, superAdminID, req.Detail)
	if err != nil {
		switch {
		case errors.Is(err, invitations.ErrInvalidInput):
			h.logger.Warn("POST /venues/{id}/transfer - Invalid input: venue_id=%d", venueID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, invitations.ErrHolderNotFound):
			h.logger.Warn("POST /venues/{id}/transfer - Venue has no administrator: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgHolderNotFound)

		case errors.Is(err, invitations.ErrSameAdmin):
			h.logger.Warn("POST /venues/{id}/transfer - Same administrator: venue_id=%d, admin_id=%d", venueID, req.NewAdminID)
			handlers.RespondConflict(w, msgSameAdmin)

		case errors.Is(err, invitations.ErrInternal):
			h.logger.Error("POST /venues/{id}/transfer - Storage failure: venue_id=%d, error=%v", venueID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("POST /venues/{id}/transfer - Failed to transfer venue: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/transfer - Venue transferred: venue_id=%d, new_admin_id=%d", venueID, req.NewAdminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
