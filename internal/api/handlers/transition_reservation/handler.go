package transition_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	transitionReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/transition_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "некорректный статус бронирования"
	msgNotFound             = "бронирование не найдено"
	msgInvalidTransition    = "недопустимая смена статуса бронирования"
	msgConcurrentUpdate     = "бронирование было изменено, обновите данные и повторите"
	msgScheduleBusy         = "расписание площадки сейчас изменяется, повторите запрос"
	msgStorageFailure       = "не удалось изменить статус, попробуйте позже"
)

type Handler struct {
	useCase TransitionReservationUseCase
	logger  Logger
}

func NewHandler(useCase TransitionReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, transitionReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid status: reservation_id=%d, status=%q", reservationID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, transitionReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionReservation.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid transition: reservation_id=%d, target=%s", reservationID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, transitionReservation.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /reservations/{id}/status - Concurrent update: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, transitionReservation.ErrScheduleBusy):
			h.logger.Warn("PATCH /reservations/{id}/status - Schedule busy: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgScheduleBusy)

		case errors.Is(err, transitionReservation.ErrInternal):
			h.logger.Error("PATCH /reservations/{id}/status - Storage failure: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to change status: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Refreshed {
		h.logger.Warn("PATCH /reservations/{id}/status - Status saved but view not refreshed: reservation_id=%d", reservationID)
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status changed successfully: reservation_id=%d, status=%s",
		reservationID, result.Reservation.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
