package confirm_payment

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
	confirmPayment "github.com/m04kA/SMC-CourtBooking/internal/usecase/confirm_payment"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type fakeUseCase struct {
	req  *confirmPayment.Request
	resp *confirmPayment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error) {
	f.req = req
	return f.resp, f.err
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/10/payment", strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"reservationId": "10"})
}

func TestHandler_Success(t *testing.T) {
	confirmed := &domain.Reservation{ID: 10, VenueID: 1, Date: "2025-03-01", StartTime: "10:00", Status: domain.StatusConfirmed}
	uc := &fakeUseCase{resp: &confirmPayment.Response{
		Reservation:  confirmed,
		Reservations: []*domain.Reservation{confirmed},
		Slots:        []domain.Slot{{VenueID: 1, Date: "2025-03-01", ClockTime: "10:00", State: domain.SlotOccupied}},
		Refreshed:    true,
	}}
	h := NewHandler(uc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"paymentMethod":"transfer","paymentProofRef":"r-10"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &confirmPayment.Request{ReservationID: 10, PaymentMethod: "transfer", PaymentProofRef: "r-10"}, uc.req)

	var body ConfirmPaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Reservation)
	assert.Equal(t, "confirmed", body.Reservation.Status)
	assert.Len(t, body.Reservations, 1)
	assert.Len(t, body.Slots, 1)
	assert.True(t, body.Refreshed)
}

func TestHandler_NotRefreshed(t *testing.T) {
	uc := &fakeUseCase{resp: &confirmPayment.Response{
		Reservation: &domain.Reservation{ID: 10, Status: domain.StatusConfirmed},
	}}
	h := NewHandler(uc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"paymentMethod":"cash"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var body ConfirmPaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Refreshed)
	assert.Empty(t, body.Slots)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid payment", err: confirmPayment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", err: confirmPayment.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "not pending", err: confirmPayment.ErrNotPending, wantStatus: http.StatusConflict},
		{name: "concurrent update", err: confirmPayment.ErrConcurrentUpdate, wantStatus: http.StatusConflict},
		{name: "schedule busy", err: confirmPayment.ErrScheduleBusy, wantStatus: http.StatusConflict},
		{name: "storage", err: confirmPayment.ErrInternal, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.Nop{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(`{"paymentMethod":"cash"}`))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
