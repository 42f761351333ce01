package domain

import (
	"fmt"
	"time"
)

// SubscriptionStatus represents the status of an administrator subscription.
// Absence of a record is the implicit free tier, not a stored value.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionActive:    {SubscriptionExpired, SubscriptionCancelled},
	SubscriptionExpired:   {SubscriptionActive, SubscriptionCancelled},
	SubscriptionCancelled: {},
}

// CanTransitionSubscription returns true if from -> to is a legal edge
func CanTransitionSubscription(from, to SubscriptionStatus) bool {
	for _, next := range subscriptionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Plan is an immutable priced tier
type Plan struct {
	ID             string
	Name           string
	Price          float64
	CommissionRate float64
	Features       []string
}

// IsFree returns true for the well-known free tier
func (p *Plan) IsFree(freePlanID string) bool {
	return p.ID == freePlanID
}

// Subscription represents an administrator's relationship to a paid plan
type Subscription struct {
	ID        int64
	AdminID   int64
	PlanID    string
	Status    SubscriptionStatus
	StartedAt time.Time
	ExpiresAt time.Time
	AutoRenew bool

	CancelReason *string
	CancelledAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCurrent returns true if the subscription grants its plan at now
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionActive && now.Before(s.ExpiresAt)
}

// IsLapsed returns true for an active record whose period is over but which is not yet marked expired
func (s *Subscription) IsLapsed(now time.Time) bool {
	return s.Status == SubscriptionActive && !now.Before(s.ExpiresAt)
}

// IsTerminal returns true if the subscription can no longer change state
func (s *Subscription) IsTerminal() bool {
	return len(subscriptionTransitions[s.Status]) == 0
}

// NewSubscription builds a fresh active subscription starting at now
func NewSubscription(adminID int64, planID string, now time.Time, period time.Duration) *Subscription {
	return &Subscription{
		AdminID:   adminID,
		PlanID:    planID,
		Status:    SubscriptionActive,
		StartedAt: now,
		ExpiresAt: now.Add(period),
		AutoRenew: true,
	}
}

// RenewedExpiry extends the period from the later of now and the current expiry
func (s *Subscription) RenewedExpiry(now time.Time, period time.Duration) time.Time {
	from := s.ExpiresAt
	if now.After(from) {
		from = now
	}
	return from.Add(period)
}

// SubscriptionPeriod converts days to a duration
func SubscriptionPeriod(days int) time.Duration {
	if days <= 0 {
		days = DefaultSubscriptionPeriodDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// ValidatePlanID checks a plan identifier
func ValidatePlanID(id string) error {
	if id == "" || len(id) > 64 {
		return fmt.Errorf("%w: plan id %q", ErrMalformedInput, id)
	}
	return nil
}
