package transition_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	transitionReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/transition_reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type fakeUseCase struct {
	req  *transitionReservation.Request
	resp *transitionReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *transitionReservation.Request) (*transitionReservation.Response, error) {
	f.req = req
	return f.resp, f.err
}

func newRequest(id, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/status", strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"reservationId": id})
}

func TestHandler_Success(t *testing.T) {
	confirmed := &domain.Reservation{ID: 7, VenueID: 1, Date: "2025-03-01", StartTime: "10:00", Status: domain.StatusConfirmed}
	uc := &fakeUseCase{resp: &transitionReservation.Response{
		Reservation:  confirmed,
		Reservations: []*domain.Reservation{confirmed},
		Slots:        []domain.Slot{{VenueID: 1, Date: "2025-03-01", ClockTime: "10:00", State: domain.SlotOccupied}},
		Refreshed:    true,
	}}
	h := NewHandler(uc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("7", `{"status":"confirmed"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &transitionReservation.Request{ReservationID: 7, Target: "confirmed"}, uc.req)

	var body TransitionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Reservation)
	assert.Equal(t, "confirmed", body.Reservation.Status)
	assert.Len(t, body.Reservations, 1)
	assert.Len(t, body.Slots, 1)
	assert.True(t, body.Refreshed)
}

func TestHandler_NotRefreshed(t *testing.T) {
	uc := &fakeUseCase{resp: &transitionReservation.Response{
		Reservation: &domain.Reservation{ID: 7, Status: domain.StatusCancelled},
	}}
	h := NewHandler(uc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("7", `{"status":"cancelled"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var body TransitionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Refreshed)
	assert.Empty(t, body.Slots)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{name: "invalid id", id: "x", body: `{"status":"confirmed"}`, wantStatus: http.StatusBadRequest},
		{name: "empty body", id: "7", body: "", wantStatus: http.StatusBadRequest},
		{name: "unknown status", id: "7", body: `{"status":"paid"}`, err: transitionReservation.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", id: "7", body: `{"status":"confirmed"}`, err: transitionReservation.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid transition", id: "7", body: `{"status":"pending"}`, err: transitionReservation.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "concurrent update", id: "7", body: `{"status":"confirmed"}`, err: transitionReservation.ErrConcurrentUpdate, wantStatus: http.StatusConflict},
		{name: "storage", id: "7", body: `{"status":"confirmed"}`, err: transitionReservation.ErrInternal, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.Nop{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.id, tt.body))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
