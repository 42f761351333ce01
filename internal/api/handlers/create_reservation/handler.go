package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidTimeSlot    = "время не входит в расписание площадки"
	msgSlotInPast         = "нельзя забронировать прошедший слот"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgScheduleBusy       = "расписание площадки сейчас изменяется, повторите запрос"
	msgStorageFailure     = "не удалось создать бронирование, попробуйте позже"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Time not in catalog: venue_id=%d, start=%s", req.VenueID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrSlotInPast):
			h.logger.Warn("POST /reservations - Slot in the past: venue_id=%d, date=%s, start=%s", req.VenueID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: venue_id=%d, date=%s, start=%s", req.VenueID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrScheduleBusy):
			h.logger.Warn("POST /reservations - Schedule busy: venue_id=%d, date=%s", req.VenueID, req.Date)
			handlers.RespondConflict(w, msgScheduleBusy)

		case errors.Is(err, createReservation.ErrInternal):
			h.logger.Error("POST /reservations - Storage failure: venue_id=%d, user_id=%d, error=%v", req.VenueID, userID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: venue_id=%d, user_id=%d, error=%v",
				req.VenueID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, venue_id=%d",
		result.ID, userID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
