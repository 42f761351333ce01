package renew_subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/subscriptions"
)

const (
	msgInvalidAdminID       = "некорректный ID администратора"
	msgForbidden            = "доступ запрещен"
	msgSubscriptionNotFound = "подписка не найдена"
	msgInvalidTransition    = "отменённую подписку нельзя продлить"
	msgStorageFailure       = "не удалось продлить подписку, попробуйте позже"
)

type Handler struct {
	service SubscriptionService
	logger  Logger
}

func NewHandler(service SubscriptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admins/{adminId}/subscription/renew
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, err := strconv.ParseInt(mux.Vars(r)["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admins/{id}/subscription/renew - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	if !middleware.CanActFor(r.Context(), adminID) {
		h.logger.Warn("POST /admins/{id}/subscription/renew - Access denied: admin_id=%d", adminID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.RenewSubscription(r.Context(), adminID)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrInvalidInput):
			h.logger.Warn("POST /admins/{id}/subscription/renew - Invalid input: admin_id=%d", adminID)
			handlers.RespondBadRequest(w, msgInvalidAdminID)

		case errors.Is(err, subscriptions.ErrSubscriptionNotFound):
			h.logger.Warn("POST /admins/{id}/subscription/renew - Subscription not found: admin_id=%d", adminID)
			handlers.RespondNotFound(w, msgSubscriptionNotFound)

		case errors.Is(err, subscriptions.ErrInvalidTransition):
			h.logger.Warn("POST /admins/{id}/subscription/renew - Invalid transition: admin_id=%d", adminID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, subscriptions.ErrInternal):
			h.logger.Error("POST /admins/{id}/subscription/renew - Storage failure: admin_id=%d, error=%v", adminID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("POST /admins/{id}/subscription/renew - Failed to renew subscription: admin_id=%d, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admins/{id}/subscription/renew - Subscription renewed: admin_id=%d, expires_at=%s", adminID, result.ExpiresAt)
	handlers.RespondJSON(w, http.StatusOK, result)
}
