package expire_code

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgMalformed      = "некорректный формат кода"
	msgNotFound       = "код не найден"
	msgAlreadyUsed    = "код уже использован"
	msgExpired        = "срок действия кода уже истёк"
	msgStorageFailure = "не удалось закрыть код, попробуйте позже"
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

// Handle POST /api/v1/invitations/{code}/expire
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	superAdminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /invitations/{code}/expire - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Expire(r.Context(), code, superAdminID)
	if err != nil {
		switch {
		case errors.Is(err, invitations.ErrInvalidInput):
			h.logger.Warn("POST /invitations/{code}/expire - Malformed code: code=%q", code)
			handlers.RespondBadRequest(w, msgMalformed)

		case errors.Is(err, invitations.ErrCodeNotFound):
			h.logger.Warn("POST /invitations/{code}/expire - Code not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invitations.ErrCodeAlreadyUsed):
			h.logger.Warn("POST /invitations/{code}/expire - Code already used: code=%s", code)
			handlers.RespondConflict(w, msgAlreadyUsed)

		case errors.Is(err, invitations.ErrCodeExpired):
			h.logger.Warn("POST /invitations/{code}/expire - Code already expired: code=%s", code)
			handlers.RespondConflict(w, msgExpired)

		case errors.Is(err, invitations.ErrInternal):
			h.logger.Error("POST /invitations/{code}/expire - Storage failure: code=%s, error=%v", code, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("POST /invitations/{code}/expire - Failed to expire code: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invitations/{code}/expire - Code expired: code=%s, superadmin_id=%d", result.Code, superAdminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
