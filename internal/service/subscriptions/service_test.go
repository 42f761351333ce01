package subscriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	planRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/plan"
	subscriptionRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/subscription"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakePlans struct {
	plans map[string]*domain.Plan
	err   error
}

func (f *fakePlans) GetByID(_ context.Context, id string) (*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.plans[id]
	if !ok {
		return nil, planRepo.ErrPlanNotFound
	}
	return p, nil
}

func (f *fakePlans) List(_ context.Context) ([]*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Plan{f.plans["free"], f.plans["pro"]}, nil
}

type fakeSubs struct {
	current   *domain.Subscription
	getErr    error
	updateErr error
	created   []*domain.Subscription
	updates   int
}

func (f *fakeSubs) Create(_ context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	sub.ID = int64(len(f.created) + 100)
	f.created = append(f.created, sub)
	f.current = sub
	return sub, nil
}

func (f *fakeSubs) GetCurrentByAdmin(_ context.Context, _ int64) (*domain.Subscription, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.current == nil {
		return nil, subscriptionRepo.ErrSubscriptionNotFound
	}
	cp := *f.current
	return &cp, nil
}

func (f *fakeSubs) Update(_ context.Context, sub *domain.Subscription) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	cp := *sub
	f.current = &cp
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingMetrics struct{ observed []string }

func (m *recordingMetrics) ObservePlanChange(plan, result string) {
	m.observed = append(m.observed, plan+":"+result)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func plans() *fakePlans {
	return &fakePlans{plans: map[string]*domain.Plan{
		"free": {ID: "free", Name: "Free", Features: []string{"listing"}},
		"pro":  {ID: "pro", Name: "Pro", Price: 29.9, CommissionRate: 0.05, Features: []string{"listing", "payments"}},
		"max":  {ID: "max", Name: "Max", Price: 59.9},
	}}
}

func newService(subs *fakeSubs, cfg Config) (*Service, *recordingMetrics) {
	m := &recordingMetrics{}
	svc := NewService(plans(), subs, fakeTx{}, m, cfg, logger.Nop{}).
		WithTimeProvider(fixedTime{t: now})
	return svc, m
}

func activeSub() *domain.Subscription {
	return &domain.Subscription{
		ID:        1,
		AdminID:   5,
		PlanID:    "pro",
		Status:    domain.SubscriptionActive,
		StartedAt: now.AddDate(0, 0, -10),
		ExpiresAt: now.AddDate(0, 0, 20),
		AutoRenew: true,
	}
}

func TestService_ChangePlan_CreatesWhenNoSubscription(t *testing.T) {
	subs := &fakeSubs{}
	svc, m := newService(subs, Config{PeriodDays: 30})

	resp, err := svc.ChangePlan(context.Background(), 5, "pro")
	require.NoError(t, err)

	require.Len(t, subs.created, 1)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, now.Format(time.RFC3339), resp.StartedAt)
	assert.Equal(t, now.AddDate(0, 0, 30).Format(time.RFC3339), resp.ExpiresAt)
	assert.True(t, resp.AutoRenew)
	assert.Equal(t, []string{"pro:ok"}, m.observed)
}

func TestService_ChangePlan_UpdatesInPlace(t *testing.T) {
	t.Run("keeps period", func(t *testing.T) {
		subs := &fakeSubs{current: activeSub()}
		svc, _ := newService(subs, Config{PeriodDays: 30})

		resp, err := svc.ChangePlan(context.Background(), 5, "max")
		require.NoError(t, err)
		assert.Empty(t, subs.created)
		assert.Equal(t, "max", resp.PlanID)
		assert.Equal(t, activeSub().ExpiresAt.Format(time.RFC3339), resp.ExpiresAt)
	})

	t.Run("resets period", func(t *testing.T) {
		subs := &fakeSubs{current: activeSub()}
		svc, _ := newService(subs, Config{PeriodDays: 30, ResetPeriodOnPlanChange: true})

		resp, err := svc.ChangePlan(context.Background(), 5, "max")
		require.NoError(t, err)
		assert.Equal(t, now.Format(time.RFC3339), resp.StartedAt)
		assert.Equal(t, now.AddDate(0, 0, 30).Format(time.RFC3339), resp.ExpiresAt)
	})
}

func TestService_ChangePlan_ReplacesCancelled(t *testing.T) {
	cancelled := activeSub()
	cancelled.Status = domain.SubscriptionCancelled
	subs := &fakeSubs{current: cancelled}
	svc, _ := newService(subs, Config{})

	resp, err := svc.ChangePlan(context.Background(), 5, "pro")
	require.NoError(t, err)
	require.Len(t, subs.created, 1)
	assert.Equal(t, "active", resp.Status)
}

func TestService_ChangePlan_UnknownPlan(t *testing.T) {
	subs := &fakeSubs{}
	svc, m := newService(subs, Config{})

	_, err := svc.ChangePlan(context.Background(), 5, "gold")
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, subs.created)
	assert.Equal(t, []string{"gold:not_found"}, m.observed)
}

func TestService_CancelSubscription(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		subs := &fakeSubs{current: activeSub()}
		svc, _ := newService(subs, Config{})

		resp, err := svc.CancelSubscription(context.Background(), 5, " too expensive ")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		require.NotNil(t, resp.CancelReason)
		assert.Equal(t, "too expensive", *resp.CancelReason)
		assert.NotNil(t, resp.CancelledAt)
		assert.False(t, resp.AutoRenew)
	})

	t.Run("no subscription", func(t *testing.T) {
		svc, _ := newService(&fakeSubs{}, Config{})
		_, err := svc.CancelSubscription(context.Background(), 5, "")
		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})

	t.Run("already cancelled", func(t *testing.T) {
		sub := activeSub()
		sub.Status = domain.SubscriptionCancelled
		subs := &fakeSubs{current: sub}
		svc, _ := newService(subs, Config{})

		_, err := svc.CancelSubscription(context.Background(), 5, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, 0, subs.updates)
	})
}

func TestService_RenewSubscription(t *testing.T) {
	t.Run("extends from expiry", func(t *testing.T) {
		subs := &fakeSubs{current: activeSub()}
		svc, _ := newService(subs, Config{PeriodDays: 30})

		resp, err := svc.RenewSubscription(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, activeSub().ExpiresAt.AddDate(0, 0, 30).Format(time.RFC3339), resp.ExpiresAt)
	})

	t.Run("reactivates expired from now", func(t *testing.T) {
		sub := activeSub()
		sub.Status = domain.SubscriptionExpired
		sub.ExpiresAt = now.AddDate(0, 0, -3)
		subs := &fakeSubs{current: sub}
		svc, _ := newService(subs, Config{PeriodDays: 30})

		resp, err := svc.RenewSubscription(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, now.AddDate(0, 0, 30).Format(time.RFC3339), resp.ExpiresAt)
	})

	t.Run("cancelled cannot be renewed", func(t *testing.T) {
		sub := activeSub()
		sub.Status = domain.SubscriptionCancelled
		svc, _ := newService(&fakeSubs{current: sub}, Config{})

		_, err := svc.RenewSubscription(context.Background(), 5)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_CurrentPlan(t *testing.T) {
	t.Run("no subscription gives free plan", func(t *testing.T) {
		svc, _ := newService(&fakeSubs{}, Config{})

		resp, err := svc.CurrentPlan(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, resp.IsFree)
		assert.Equal(t, "free", resp.Plan.ID)
		assert.Nil(t, resp.Subscription)
	})

	t.Run("active subscription", func(t *testing.T) {
		svc, _ := newService(&fakeSubs{current: activeSub()}, Config{})

		resp, err := svc.CurrentPlan(context.Background(), 5)
		require.NoError(t, err)
		assert.False(t, resp.IsFree)
		assert.Equal(t, "pro", resp.Plan.ID)
		require.NotNil(t, resp.Subscription)
	})

	t.Run("lapsed subscription is marked expired", func(t *testing.T) {
		sub := activeSub()
		sub.ExpiresAt = now.Add(-time.Minute)
		subs := &fakeSubs{current: sub}
		svc, _ := newService(subs, Config{})

		resp, err := svc.CurrentPlan(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, resp.IsFree)
		assert.Equal(t, domain.SubscriptionExpired, subs.current.Status)
	})

	t.Run("failed lazy expiry is not an error", func(t *testing.T) {
		sub := activeSub()
		sub.ExpiresAt = now.Add(-time.Minute)
		svc, _ := newService(&fakeSubs{current: sub, updateErr: errors.New("db down")}, Config{})

		resp, err := svc.CurrentPlan(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, resp.IsFree)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, _ := newService(&fakeSubs{getErr: errors.New("db down")}, Config{})

		_, err := svc.CurrentPlan(context.Background(), 5)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_ListPlans(t *testing.T) {
	svc, _ := newService(&fakeSubs{}, Config{})

	resp, err := svc.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Plans, 2)
	assert.Equal(t, "free", resp.Plans[0].ID)
}
