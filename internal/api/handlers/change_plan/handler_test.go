package change_plan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/subscriptions"
	"github.com/m04kA/SMC-CourtBooking/internal/service/subscriptions/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type fakeService struct {
	calls  int
	planID string
	err    error
}

func (f *fakeService) ChangePlan(_ context.Context, adminID int64, planID string) (*models.SubscriptionResponse, error) {
	f.calls++
	f.planID = planID
	if f.err != nil {
		return nil, f.err
	}
	return &models.SubscriptionResponse{ID: 1, AdminID: adminID, PlanID: planID, Status: "active"}, nil
}

func newRequest(adminID string, userID int64, role, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admins/"+adminID+"/subscription", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"adminId": adminID})
	return req.WithContext(middleware.WithUser(req.Context(), userID, role))
}

func TestHandler_Success(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("7", 7, middleware.RoleAdmin, `{"planId":"premium"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "premium", svc.planID)
	assert.Contains(t, rec.Body.String(), `"planId":"premium"`)
}

func TestHandler_SuperAdminActsForOthers(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("7", 1, middleware.RoleSuperAdmin, `{"planId":"basic"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Forbidden(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.Nop{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("7", 8, middleware.RoleAdmin, `{"planId":"basic"}`))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, svc.calls)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "empty plan", err: subscriptions.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown plan", err: subscriptions.ErrPlanNotFound, wantStatus: http.StatusNotFound},
		{name: "storage", err: subscriptions.ErrInternal, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.Nop{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("7", 7, middleware.RoleAdmin, `{"planId":"x"}`))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
