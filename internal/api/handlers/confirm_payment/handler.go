package confirm_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-CourtBooking/internal/usecase/confirm_payment"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidPayment       = "некорректные данные оплаты"
	msgNotFound             = "бронирование не найдено"
	msgNotPending           = "бронирование не ожидает оплаты"
	msgConcurrentUpdate     = "бронирование было изменено, обновите данные и повторите"
	msgScheduleBusy         = "расписание площадки сейчас изменяется, повторите запрос"
	msgStorageFailure       = "не удалось подтвердить оплату, попробуйте позже"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/payment - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/payment - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		case errors.Is(err, confirmPayment.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/payment - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrNotPending):
			h.logger.Warn("POST /reservations/{id}/payment - Reservation not pending: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, confirmPayment.ErrConcurrentUpdate):
			h.logger.Warn("POST /reservations/{id}/payment - Concurrent update: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, confirmPayment.ErrScheduleBusy):
			h.logger.Warn("POST /reservations/{id}/payment - Schedule busy: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgScheduleBusy)

		case errors.Is(err, confirmPayment.ErrInternal):
			h.logger.Error("POST /reservations/{id}/payment - Storage failure: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("POST /reservations/{id}/payment - Failed to confirm payment: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Refreshed {
		h.logger.Warn("POST /reservations/{id}/payment - Payment saved but view not refreshed: reservation_id=%d", reservationID)
	}

	h.logger.Info("POST /reservations/{id}/payment - Payment confirmed: reservation_id=%d, method=%s",
		reservationID, req.PaymentMethod)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
