package toggle_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	toggleSlot "github.com/m04kA/SMC-CourtBooking/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidSlot        = "некорректная дата или время слота"
	msgSlotInPast         = "нельзя изменить прошедший слот"
	msgSlotOccupied       = "слот уже занят"
	msgSlotHeldByBooking  = "слот занят бронированием клиента, отмените бронирование"
	msgBlockNotFound      = "слот не заблокирован"
	msgScheduleBusy       = "расписание площадки сейчас изменяется, повторите запрос"
	msgStorageFailure     = "не удалось изменить слот, попробуйте позже"
)

type Handler struct {
	useCase ToggleSlotUseCase
	logger  Logger
}

func NewHandler(useCase ToggleSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT|DELETE /api/v1/venues/{venueId}/slots/{date}/{time}/block
// PUT блокирует слот, DELETE снимает блокировку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " /venues/{id}/slots/{date}/{time}/block"
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid venue ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	clockTime, err := types.NewTimeStringFromString(vars["time"])
	if err != nil {
		h.logger.Warn("%s - Invalid time: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &toggleSlot.Request{
		VenueID:   venueID,
		Date:      vars["date"],
		ClockTime: clockTime,
		AdminID:   adminID,
		Action:    toggleSlot.ActionUnblock,
	}

	if r.Method == http.MethodPut {
		req.Action = toggleSlot.ActionBlock

		var body BlockSlotRequest
		if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
			h.logger.Warn("%s - Invalid request body: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		req.VenueName = body.VenueName
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, toggleSlot.ErrSlotInPast):
			h.logger.Warn("%s - Slot in the past: venue_id=%d, date=%s, time=%s", route, venueID, req.Date, clockTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, toggleSlot.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: venue_id=%d, error=%v", route, venueID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, toggleSlot.ErrSlotOccupied):
			h.logger.Warn("%s - Slot occupied: venue_id=%d, date=%s, time=%s", route, venueID, req.Date, clockTime)
			handlers.RespondConflict(w, msgSlotOccupied)

		case errors.Is(err, toggleSlot.ErrSlotHeldByBooking):
			h.logger.Warn("%s - Slot held by booking: venue_id=%d, date=%s, time=%s", route, venueID, req.Date, clockTime)
			handlers.RespondConflict(w, msgSlotHeldByBooking)

		case errors.Is(err, toggleSlot.ErrBlockNotFound):
			h.logger.Warn("%s - Block not found: venue_id=%d, date=%s, time=%s", route, venueID, req.Date, clockTime)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, toggleSlot.ErrScheduleBusy):
			h.logger.Warn("%s - Schedule busy: venue_id=%d, date=%s", route, venueID, req.Date)
			handlers.RespondConflict(w, msgScheduleBusy)

		case errors.Is(err, toggleSlot.ErrInternal):
			h.logger.Error("%s - Storage failure: venue_id=%d, error=%v", route, venueID, err)
			handlers.RespondServiceUnavailable(w, msgStorageFailure)

		default:
			h.logger.Error("%s - Failed to toggle slot: venue_id=%d, error=%v", route, venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Slot updated: venue_id=%d, date=%s, time=%s, action=%s, admin_id=%d",
		route, venueID, req.Date, clockTime, req.Action, adminID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
