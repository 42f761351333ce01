package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// ReservationKind distinguishes customer bookings from manual admin blocks
type ReservationKind string

const (
	KindBooking ReservationKind = "booking"
	KindBlock   ReservationKind = "block"
)

// reservationTransitions legal status edges; completed and cancelled are terminal
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ParseReservationStatus converts a raw value into a known status
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if _, ok := reservationTransitions[status]; !ok {
		return "", fmt.Errorf("%w: unknown reservation status %q", ErrMalformedInput, s)
	}
	return status, nil
}

// CanTransition returns true if from -> to is a legal edge
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidTransitionsFrom lists statuses reachable in one step
func ValidTransitionsFrom(from ReservationStatus) []ReservationStatus {
	next := reservationTransitions[from]
	out := make([]ReservationStatus, len(next))
	copy(out, next)
	return out
}

// IsTerminal returns true if no transition leaves the status
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

// Reservation represents a customer's claim on a venue for a date/time range.
// VenueName and CustomerName are snapshots taken at write time.
type Reservation struct {
	ID         int64
	VenueID    int64
	VenueName  string
	CustomerID int64 // for blocks: the administrator who blocked the slot

	CustomerName  string
	CustomerPhone *string

	Date      string
	StartTime types.TimeString
	EndTime   types.TimeString // zero value means "one slot"
	Price     float64

	PaymentMethod   *string
	PaymentProofRef *string

	Kind    ReservationKind
	Status  ReservationStatus
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies its slots
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// IsBlock returns true for admin occupancy records
func (r *Reservation) IsBlock() bool {
	return r.Kind == KindBlock
}

// CoveredClockTimes returns the catalog clock times t with start <= t < end.
// When end is missing, invalid or not after start, only start is covered.
func (r *Reservation) CoveredClockTimes(catalog DailyCatalog) []types.TimeString {
	start, err := r.StartTime.Minutes()
	if err != nil {
		return nil
	}
	end, err := r.EndTime.Minutes()
	if err != nil || end <= start {
		return []types.TimeString{r.StartTime}
	}

	var covered []types.TimeString
	for _, t := range catalog.ClockTimes() {
		m, _ := t.Minutes()
		if m >= start && m < end {
			covered = append(covered, t)
		}
	}
	if len(covered) == 0 {
		covered = append(covered, r.StartTime)
	}
	return covered
}

// Covers returns true if the reservation occupies clock time t
func (r *Reservation) Covers(t types.TimeString, catalog DailyCatalog) bool {
	for _, c := range r.CoveredClockTimes(catalog) {
		if c == t {
			return true
		}
	}
	return false
}

// OccupiedClockTimes builds the occupancy set from non-cancelled reservations
func OccupiedClockTimes(reservations []*Reservation, catalog DailyCatalog) OccupiedSet {
	occupied := make(OccupiedSet)
	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		for _, t := range r.CoveredClockTimes(catalog) {
			occupied.Add(t)
		}
	}
	return occupied
}

// SortByCreatedDesc orders reservations most recently created first; ties by ID desc
func SortByCreatedDesc(xs []*Reservation) {
	sort.SliceStable(xs, func(i, j int) bool {
		if !xs[i].CreatedAt.Equal(xs[j].CreatedAt) {
			return xs[i].CreatedAt.After(xs[j].CreatedAt)
		}
		return xs[i].ID > xs[j].ID
	})
}

// FilterByStatus returns a new slice with reservations in the given status,
// or all of them when status is nil, sorted by creation time descending
func FilterByStatus(xs []*Reservation, status *ReservationStatus) []*Reservation {
	out := make([]*Reservation, 0, len(xs))
	for _, r := range xs {
		if r == nil {
			continue
		}
		if status == nil || r.Status == *status {
			out = append(out, r)
		}
	}
	SortByCreatedDesc(out)
	return out
}

// CountByStatus counts reservations in the given status
func CountByStatus(xs []*Reservation, status ReservationStatus) int {
	n := 0
	for _, r := range xs {
		if r != nil && r.Status == status {
			n++
		}
	}
	return n
}

// ReservationFilter equality filter for storage queries
type ReservationFilter struct {
	VenueID   int64               // Обязательный параметр
	Date      *string             // Фильтр по дате (опционально)
	Statuses  []ReservationStatus // Фильтр по статусам (опционально, пусто - все)
	StartTime *types.TimeString   // Фильтр по времени начала (опционально)
	Kind      *ReservationKind    // Фильтр по типу записи (опционально)
}
