package get_current_plan

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
	msgInvalidAdminID = "некорректный ID администратора"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/admins/{adminId}/plan
// Всегда возвращает тариф: без действующей подписки это бесплатный тариф
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, err := strconv.ParseInt(mux.Vars(r)["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admins/{id}/plan - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	if !middleware.CanActFor(r.Context(), adminID) {
		h.logger.Warn("GET /admins/{id}/plan - Access denied: admin_id=%d", adminID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.CurrentPlan(r.Context(), adminID)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrInvalidInput):
			h.logger.Warn("GET /admins/{id}/plan - Invalid input: admin_id=%d, error=%v", adminID, err)
			handlers.RespondBadRequest(w, msgInvalidAdminID)

		default:
			h.logger.Error("GET /admins/{id}/plan - Failed to get plan: admin_id=%d, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admins/{id}/plan - Plan retrieved successfully: admin_id=%d, plan=%s, free=%t",
		adminID, result.Plan.ID, result.IsFree)
	handlers.RespondJSON(w, http.StatusOK, result)
}
