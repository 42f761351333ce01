package get_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	getSlots "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_slots"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgMissingDate    = "дата обязательна"
	msgStorageFailure = "не удалось загрузить расписание, попробуйте позже"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	if err != nil || venueID <= 0 {
		h.logger.Warn("GET /venues/{id}/slots - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /venues/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Некорректная дата не ошибка: все слоты будут классифицированы только по занятости
	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{VenueID: venueID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/slots - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidVenueID)

		case errors.Is(err, getSlots.ErrInternal):
			h.logger.Error("GET /venues/{id}/slots - Storage failure: venue_id=%d, date=%s, error=%v", venueID, date, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("GET /venues/{id}/slots - Failed to get slots: venue_id=%d, date=%s, error=%v", venueID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/slots - Slots retrieved successfully: venue_id=%d, date=%s, available=%d",
		venueID, date, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
