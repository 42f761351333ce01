package get_venue_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidParams  = "некорректные параметры запроса"
	msgStorageFailure = "не удалось загрузить бронирования, попробуйте позже"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/reservations
// Query params: date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/reservations - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	serviceReq := ToServiceRequest(venueID, r.URL.Query().Get("date"), r.URL.Query().Get("status"))

	result, err := h.service.GetVenueReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/reservations - Invalid params: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, reservations.ErrInternal):
			h.logger.Error("GET /venues/{id}/reservations - Storage failure: venue_id=%d, error=%v", venueID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("GET /venues/{id}/reservations - Failed to get reservations: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/reservations - Reservations retrieved successfully: venue_id=%d, count=%d, total=%d",
		venueID, len(result.Reservations), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
