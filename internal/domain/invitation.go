package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// InvitationAction is the lifecycle event recorded for an invitation code
type InvitationAction string

const (
	InvitationCreated     InvitationAction = "created"
	InvitationUsed        InvitationAction = "used"
	InvitationExpired     InvitationAction = "expired"
	InvitationTransferred InvitationAction = "transferred"
)

var invitationCodePattern = regexp.MustCompile(`^[A-Z0-9-]{4,32}$`)

// InvitationEvent is one immutable entry of the invitation audit log.
// Code validity is derived from the most recent event of the code.
type InvitationEvent struct {
	ID              int64
	VenueID         int64
	VenueName       string
	Code            string
	IssuedBy        int64
	Action          InvitationAction
	PreviousAdminID *int64
	NewAdminID      *int64
	ExpiresAt       *time.Time
	Detail          *string
	CreatedAt       time.Time
}

// NormalizeCode trims whitespace and upper-cases the code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCodeFormat checks an already normalized code
func ValidateCodeFormat(code string) error {
	if !invitationCodePattern.MatchString(code) {
		return fmt.Errorf("%w: invitation code %q", ErrMalformedInput, code)
	}
	return nil
}

// LatestEvent returns the most recent event; ties are broken by ID
func LatestEvent(events []*InvitationEvent) *InvitationEvent {
	var latest *InvitationEvent
	for _, e := range events {
		if e == nil {
			continue
		}
		if latest == nil ||
			e.CreatedAt.After(latest.CreatedAt) ||
			(e.CreatedAt.Equal(latest.CreatedAt) && e.ID > latest.ID) {
			latest = e
		}
	}
	return latest
}

// EvaluateCode derives the state of a code from its history.
// Returns nil when the code can still be redeemed, otherwise one of
// ErrNotFound, ErrAlreadyUsed or ErrExpired.
func EvaluateCode(events []*InvitationEvent, now time.Time) error {
	latest := LatestEvent(events)
	if latest == nil {
		return ErrNotFound
	}

	switch latest.Action {
	case InvitationUsed, InvitationTransferred:
		return ErrAlreadyUsed
	case InvitationExpired:
		return ErrExpired
	case InvitationCreated:
		if latest.ExpiresAt != nil && !now.Before(*latest.ExpiresAt) {
			return ErrExpired
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown invitation action %q", ErrMalformedInput, latest.Action)
	}
}

// CurrentVenueAdmin returns the administrator holding the venue according to
// the latest used/transferred event, or nil if nobody holds it
func CurrentVenueAdmin(events []*InvitationEvent) *int64 {
	var holders []*InvitationEvent
	for _, e := range events {
		if e != nil && (e.Action == InvitationUsed || e.Action == InvitationTransferred) && e.NewAdminID != nil {
			holders = append(holders, e)
		}
	}
	latest := LatestEvent(holders)
	if latest == nil {
		return nil
	}
	return latest.NewAdminID
}
