package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB12", NormalizeCode(" ab12 "))
	assert.Equal(t, NormalizeCode("AB12"), NormalizeCode("\tAb12\n"))
}

func TestValidateCodeFormat(t *testing.T) {
	assert.NoError(t, ValidateCodeFormat("AB12"))
	assert.NoError(t, ValidateCodeFormat("VENUE-7-XK2P"))
	assert.ErrorIs(t, ValidateCodeFormat(""), ErrMalformedInput)
	assert.ErrorIs(t, ValidateCodeFormat("AB1"), ErrMalformedInput)
	assert.ErrorIs(t, ValidateCodeFormat("ab12"), ErrMalformedInput)
	assert.ErrorIs(t, ValidateCodeFormat("AB 12"), ErrMalformedInput)
}

func TestEvaluateCode(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	created := &InvitationEvent{ID: 1, Code: "AB12", Action: InvitationCreated, CreatedAt: now.Add(-time.Hour)}

	tests := []struct {
		name   string
		events []*InvitationEvent
		want   error
	}{
		{name: "no events", events: nil, want: ErrNotFound},
		{name: "fresh code", events: []*InvitationEvent{created}, want: nil},
		{
			name: "used",
			events: []*InvitationEvent{created,
				{ID: 2, Action: InvitationUsed, NewAdminID: ptr.Ptr(int64(5)), CreatedAt: now.Add(-time.Minute)}},
			want: ErrAlreadyUsed,
		},
		{
			name: "transferred",
			events: []*InvitationEvent{created,
				{ID: 2, Action: InvitationUsed, CreatedAt: now.Add(-30 * time.Minute)},
				{ID: 3, Action: InvitationTransferred, CreatedAt: now.Add(-time.Minute)}},
			want: ErrAlreadyUsed,
		},
		{
			name: "explicitly expired",
			events: []*InvitationEvent{created,
				{ID: 2, Action: InvitationExpired, CreatedAt: now.Add(-time.Minute)}},
			want: ErrExpired,
		},
		{
			name: "expiry passed",
			events: []*InvitationEvent{{ID: 1, Action: InvitationCreated, ExpiresAt: ptr.Ptr(now),
				CreatedAt: now.Add(-time.Hour)}},
			want: ErrExpired,
		},
		{
			name: "expiry in future",
			events: []*InvitationEvent{{ID: 1, Action: InvitationCreated, ExpiresAt: ptr.Ptr(now.Add(time.Second)),
				CreatedAt: now.Add(-time.Hour)}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EvaluateCode(tt.events, now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLatestEvent_TieBreakByID(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []*InvitationEvent{
		{ID: 2, Action: InvitationUsed, CreatedAt: at},
		{ID: 1, Action: InvitationCreated, CreatedAt: at},
	}
	latest := LatestEvent(events)
	require.NotNil(t, latest)
	assert.Equal(t, int64(2), latest.ID)
}

func TestCurrentVenueAdmin(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, CurrentVenueAdmin([]*InvitationEvent{{ID: 1, Action: InvitationCreated, CreatedAt: at}}))

	events := []*InvitationEvent{
		{ID: 1, Action: InvitationCreated, CreatedAt: at},
		{ID: 2, Action: InvitationUsed, NewAdminID: ptr.Ptr(int64(5)), CreatedAt: at.Add(time.Hour)},
		{ID: 3, Action: InvitationTransferred, PreviousAdminID: ptr.Ptr(int64(5)), NewAdminID: ptr.Ptr(int64(9)),
			CreatedAt: at.Add(2 * time.Hour)},
	}
	admin := CurrentVenueAdmin(events)
	require.NotNil(t, admin)
	assert.Equal(t, int64(9), *admin)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ok", Kind(nil))
	assert.Equal(t, "already_used", Kind(ErrAlreadyUsed))
	assert.Equal(t, "storage_failure", Kind(errors.Join(errors.New("x"), ErrStorageFailure)))
	assert.True(t, IsRetryable(ErrStorageFailure))
	assert.False(t, IsRetryable(ErrConflict))
}
