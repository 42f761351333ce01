package issue_code

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
	msgInvalidInput       = "ID и название площадки обязательны"
	msgStorageFailure     = "не удалось выпустить код, попробуйте позже"
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

// Handle POST /api/v1/invitations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	superAdminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /invitations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.IssueCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invitations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Issue(r.Context(), req.VenueID, req.VenueName, superAdminID)
	if err != nil {
		switch {
		case errors.Is(err, invitations.ErrInvalidInput):
			h.logger.Warn("POST /invitations - Invalid input: venue_id=%d", req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, invitations.ErrInternal):
			h.logger.Error("POST /invitations - Storage failure: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("POST /invitations - Failed to issue code: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invitations - Code issued: code=%s, venue_id=%d, superadmin_id=%d", result.Code, req.VenueID, superAdminID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
