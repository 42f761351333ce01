package list_plans

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
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

// Handle GET /api/v1/plans
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPlans(r.Context())
	if err != nil {
		h.logger.Error("GET /plans - Failed to list plans: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /plans - Plans retrieved successfully: count=%d", len(result.Plans))
	handlers.RespondJSON(w, http.StatusOK, result)
}
