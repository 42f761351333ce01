package change_plan

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
	msgInvalidAdminID     = "некорректный ID администратора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "ID тарифа обязателен"
	msgPlanNotFound       = "тариф не найден"
	msgStorageFailure     = "не удалось сменить тариф, попробуйте позже"
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

// Handle PUT /api/v1/admins/{adminId}/subscription
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, err := strconv.ParseInt(mux.Vars(r)["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admins/{id}/subscription - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	if !middleware.CanActFor(r.Context(), adminID) {
		h.logger.Warn("PUT /admins/{id}/subscription - Access denied: admin_id=%d", adminID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.ChangePlanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admins/{id}/subscription - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ChangePlan(r.Context(), adminID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrInvalidInput):
			h.logger.Warn("PUT /admins/{id}/subscription - Invalid input: admin_id=%d, error=%v", adminID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, subscriptions.ErrPlanNotFound):
			h.logger.Warn("PUT /admins/{id}/subscription - Plan not found: admin_id=%d, plan=%s", adminID, req.PlanID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, subscriptions.ErrInternal):
			h.logger.Error("PUT /admins/{id}/subscription - Storage failure: admin_id=%d, error=%v", adminID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("PUT /admins/{id}/subscription - Failed to change plan: admin_id=%d, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admins/{id}/subscription - Plan changed successfully: admin_id=%d, plan=%s", adminID, result.PlanID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
