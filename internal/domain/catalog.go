package domain

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// DailyCatalog is the fixed set of hourly clock times a venue can be booked at.
// It is the same for every venue and every date; it is never stored.
type DailyCatalog struct {
	StartHour int
	EndHour   int // inclusive
}

// DefaultCatalog returns the 08:00..22:00 hourly catalog (15 entries).
func DefaultCatalog() DailyCatalog {
	return DailyCatalog{StartHour: DefaultCatalogStartHour, EndHour: DefaultCatalogEndHour}
}

// NewDailyCatalog builds a catalog from configured hours.
func NewDailyCatalog(startHour, endHour int) (DailyCatalog, error) {
	if startHour < 0 || endHour > 23 || startHour > endHour {
		return DailyCatalog{}, fmt.Errorf("%w: catalog hours %d..%d", ErrMalformedInput, startHour, endHour)
	}
	return DailyCatalog{StartHour: startHour, EndHour: endHour}, nil
}

// ClockTimes returns catalog entries in chronological order.
func (c DailyCatalog) ClockTimes() []types.TimeString {
	if c.EndHour < c.StartHour {
		return nil
	}
	times := make([]types.TimeString, 0, c.EndHour-c.StartHour+1)
	for h := c.StartHour; h <= c.EndHour; h++ {
		times = append(times, types.TimeString(fmt.Sprintf("%02d:00", h)))
	}
	return times
}

// Len returns the number of catalog entries.
func (c DailyCatalog) Len() int {
	if c.EndHour < c.StartHour {
		return 0
	}
	return c.EndHour - c.StartHour + 1
}

// Contains returns true if t is one of the catalog clock times.
func (c DailyCatalog) Contains(t types.TimeString) bool {
	minutes, err := t.Minutes()
	if err != nil || minutes%60 != 0 {
		return false
	}
	hour := minutes / 60
	return hour >= c.StartHour && hour <= c.EndHour
}
