package toggle_slot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	toggleSlot "github.com/m04kA/SMC-CourtBooking/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type fakeUseCase struct {
	req *toggleSlot.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *toggleSlot.Request) (*toggleSlot.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &toggleSlot.Response{
		VenueID:   req.VenueID,
		Date:      req.Date,
		ClockTime: req.ClockTime,
		Action:    req.Action,
		Slots: []domain.Slot{
			{VenueID: req.VenueID, Date: req.Date, ClockTime: req.ClockTime, State: domain.SlotOccupied},
		},
		Refreshed: true,
	}, nil
}

func newRequest(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/venues/1/slots/2025-03-01/10:00/block", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"venueId": "1", "date": "2025-03-01", "time": "10:00"})
	return req.WithContext(middleware.WithUser(req.Context(), 100, middleware.RoleAdmin))
}

func TestHandler_Block(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(http.MethodPut, `{"venueName":"Cancha Central"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, toggleSlot.ActionBlock, uc.req.Action)
	assert.Equal(t, "Cancha Central", uc.req.VenueName)
	assert.Equal(t, int64(100), uc.req.AdminID)

	var body ToggleSlotResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "block", body.Action)
	assert.Equal(t, "10:00", body.Time)
	assert.True(t, body.Refreshed)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "occupied", body.Slots[0].State)
}

func TestHandler_BlockWithoutBody(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(http.MethodPut, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, uc.req.VenueName)
}

func TestHandler_Unblock(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(http.MethodDelete, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, toggleSlot.ActionUnblock, uc.req.Action)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "past", err: fmt.Errorf("%w: %w", toggleSlot.ErrInvalidInput, toggleSlot.ErrSlotInPast), wantStatus: http.StatusBadRequest},
		{name: "occupied", err: toggleSlot.ErrSlotOccupied, wantStatus: http.StatusConflict},
		{name: "held by booking", err: toggleSlot.ErrSlotHeldByBooking, wantStatus: http.StatusConflict},
		{name: "no block", err: toggleSlot.ErrBlockNotFound, wantStatus: http.StatusNotFound},
		{name: "busy", err: toggleSlot.ErrScheduleBusy, wantStatus: http.StatusConflict},
		{name: "storage", err: toggleSlot.ErrInternal, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.Nop{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(http.MethodPut, ""))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_InvalidTime(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.Nop{})

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	req = mux.SetURLVars(req, map[string]string{"venueId": "1", "date": "2025-03-01", "time": "ten"})
	req = req.WithContext(middleware.WithUser(req.Context(), 100, middleware.RoleAdmin))

	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
