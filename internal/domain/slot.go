package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// SlotState is the derived state of a catalog slot.
type SlotState string

const (
	SlotPast      SlotState = "past"
	SlotOccupied  SlotState = "occupied"
	SlotAvailable SlotState = "available"
)

// Slot represents one bookable hour of a venue on a date.
// Identified by (venue, date, clock time); recomputed on every query, never persisted.
type Slot struct {
	VenueID   int64
	Date      string
	ClockTime types.TimeString
	State     SlotState
}

// IsBookable returns true if the slot can be reserved or blocked right now
func (s Slot) IsBookable() bool {
	return s.State == SlotAvailable
}

// OccupiedSet is the set of clock times covered by existing reservations.
type OccupiedSet map[types.TimeString]struct{}

// Add marks t as occupied.
func (o OccupiedSet) Add(t types.TimeString) {
	o[t] = struct{}{}
}

// Has returns true if t is occupied.
func (o OccupiedSet) Has(t types.TimeString) bool {
	_, ok := o[t]
	return ok
}

// DeriveSlots classifies every catalog entry for venue/date.
//
// now is sampled once by the caller. A slot whose instant is strictly before now is past
// regardless of occupancy. If date cannot be parsed the slot is treated as not past and
// classified by occupancy alone. Result is in catalog order.
func DeriveSlots(venueID int64, date string, occupied OccupiedSet, now time.Time, catalog DailyCatalog) []Slot {
	clockTimes := catalog.ClockTimes()
	slots := make([]Slot, 0, len(clockTimes))

	for _, t := range clockTimes {
		state := SlotAvailable
		if occupied.Has(t) {
			state = SlotOccupied
		}

		if at, err := t.OnDate(date, now.Location()); err == nil && at.Before(now) {
			state = SlotPast
		}

		slots = append(slots, Slot{
			VenueID:   venueID,
			Date:      date,
			ClockTime: t,
			State:     state,
		})
	}

	return slots
}

// FindSlot returns the slot at clock time t.
func FindSlot(slots []Slot, t types.TimeString) (Slot, bool) {
	for _, s := range slots {
		if s.ClockTime == t {
			return s, true
		}
	}
	return Slot{}, false
}

// IsSlotInPast reports whether date+t is strictly before now. Unparseable input is not past.
func IsSlotInPast(date string, t types.TimeString, now time.Time) bool {
	at, err := t.OnDate(date, now.Location())
	return err == nil && at.Before(now)
}

// ValidateDate checks the YYYY-MM-DD format.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return ErrMalformedInput
	}
	return nil
}
