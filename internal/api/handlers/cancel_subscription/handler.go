package cancel_subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/subscriptions"
	"github.com/m04kA/SMC-CourtBooking/internal/service/subscriptions/models"
)

const (
	msgInvalidAdminID       = "некорректный ID администратора"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgForbidden            = "доступ запрещен"
	msgInvalidInput         = "причина отмены слишком длинная"
	msgSubscriptionNotFound = "подписка не найдена"
	msgInvalidTransition    = "подписка уже отменена или истекла"
	msgStorageFailure       = "не удалось отменить подписку, попробуйте позже"
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

// Handle DELETE /api/v1/admins/{adminId}/subscription
// Тело с причиной отмены необязательно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, err := strconv.ParseInt(mux.Vars(r)["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admins/{id}/subscription - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	if !middleware.CanActFor(r.Context(), adminID) {
		h.logger.Warn("DELETE /admins/{id}/subscription - Access denied: admin_id=%d", adminID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.CancelSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("DELETE /admins/{id}/subscription - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CancelSubscription(r.Context(), adminID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrInvalidInput):
			h.logger.Warn("DELETE /admins/{id}/subscription - Invalid input: admin_id=%d, error=%v", adminID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, subscriptions.ErrSubscriptionNotFound):
			h.logger.Warn("DELETE /admins/{id}/subscription - Subscription not found: admin_id=%d", adminID)
			handlers.RespondNotFound(w, msgSubscriptionNotFound)

		case errors.Is(err, subscriptions.ErrInvalidTransition):
			h.logger.Warn("DELETE /admins/{id}/subscription - Invalid transition: admin_id=%d, error=%v", adminID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, subscriptions.ErrInternal):
			h.logger.Error("DELETE /admins/{id}/subscription - Storage failure: admin_id=%d, error=%v", adminID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("DELETE /admins/{id}/subscription - Failed to cancel subscription: admin_id=%d, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admins/{id}/subscription - Subscription cancelled: admin_id=%d, subscription_id=%d", adminID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
