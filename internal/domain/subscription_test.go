package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_Lifecycle(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	period := SubscriptionPeriod(30)

	s := NewSubscription(7, "pro", now, period)
	assert.Equal(t, SubscriptionActive, s.Status)
	assert.True(t, s.AutoRenew)
	assert.Equal(t, now.Add(30*24*time.Hour), s.ExpiresAt)
	assert.True(t, s.IsCurrent(now))
	assert.False(t, s.IsLapsed(now))

	later := s.ExpiresAt.Add(time.Minute)
	assert.False(t, s.IsCurrent(later))
	assert.True(t, s.IsLapsed(later))
}

func TestSubscription_RenewedExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	period := SubscriptionPeriod(30)

	active := &Subscription{ExpiresAt: now.Add(10 * 24 * time.Hour)}
	assert.Equal(t, now.Add(40*24*time.Hour), active.RenewedExpiry(now, period))

	expired := &Subscription{ExpiresAt: now.Add(-5 * 24 * time.Hour)}
	assert.Equal(t, now.Add(30*24*time.Hour), expired.RenewedExpiry(now, period))
}

func TestCanTransitionSubscription(t *testing.T) {
	assert.True(t, CanTransitionSubscription(SubscriptionActive, SubscriptionCancelled))
	assert.True(t, CanTransitionSubscription(SubscriptionExpired, SubscriptionActive))
	assert.False(t, CanTransitionSubscription(SubscriptionCancelled, SubscriptionActive))
	assert.True(t, (&Subscription{Status: SubscriptionCancelled}).IsTerminal())
}

func TestSubscriptionPeriod_Default(t *testing.T) {
	assert.Equal(t, 30*24*time.Hour, SubscriptionPeriod(0))
}

func TestValidatePlanID(t *testing.T) {
	assert.NoError(t, ValidatePlanID("pro"))
	assert.ErrorIs(t, ValidatePlanID(""), ErrMalformedInput)
}
