package create_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type fakeUseCase struct {
	req *createReservation.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &createReservation.Response{
		ID:           1,
		VenueID:      req.VenueID,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      "11:00",
		Status:       "pending",
		CreatedAt:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}, nil
}

const validBody = `{"venueId":3,"venueName":"Cancha Central","customerName":"Lucia","date":"2025-03-01","startTime":"10:00","price":100}`

func newRequest(body string, userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if userID == 0 {
		return req
	}
	return req.WithContext(middleware.WithUser(req.Context(), userID, ""))
}

func TestHandler_Success(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(validBody, 55))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(55), uc.req.CustomerID)
	assert.Equal(t, types.TimeString("10:00"), uc.req.StartTime)
	assert.Nil(t, uc.req.EndTime)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     int64
		err        error
		wantStatus int
	}{
		{name: "no user", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "bad json", body: `{`, userID: 55, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: strings.Replace(validBody, `"10:00"`, `"ten"`, 1), userID: 55, wantStatus: http.StatusBadRequest},
		{name: "not in catalog", body: validBody, userID: 55, err: createReservation.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{name: "past", body: validBody, userID: 55, err: createReservation.ErrSlotInPast, wantStatus: http.StatusBadRequest},
		{name: "taken", body: validBody, userID: 55, err: createReservation.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "busy", body: validBody, userID: 55, err: createReservation.ErrScheduleBusy, wantStatus: http.StatusConflict},
		{name: "storage", body: validBody, userID: 55, err: createReservation.ErrInternal, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.Nop{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.body, tt.userID))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
