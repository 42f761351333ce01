package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	times := catalog.ClockTimes()

	require.Len(t, times, 15)
	assert.Equal(t, types.TimeString("08:00"), times[0])
	assert.Equal(t, types.TimeString("22:00"), times[14])
	assert.True(t, catalog.Contains("13:00"))
	assert.False(t, catalog.Contains("13:30"))
	assert.False(t, catalog.Contains("07:00"))
	assert.False(t, catalog.Contains("23:00"))
	assert.False(t, catalog.Contains("bogus"))
}

func TestNewDailyCatalog_Invalid(t *testing.T) {
	_, err := NewDailyCatalog(20, 10)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestDeriveSlots_Scenario(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	occupied := OccupiedSet{"10:00": {}, "14:00": {}}

	slots := DeriveSlots(1, "2025-03-01", occupied, now, DefaultCatalog())
	require.Len(t, slots, 15)

	expected := map[types.TimeString]SlotState{
		"08:00": SlotPast,
		"09:00": SlotPast,
		"10:00": SlotOccupied,
		"11:00": SlotAvailable,
		"12:00": SlotAvailable,
		"13:00": SlotAvailable,
		"14:00": SlotOccupied,
		"15:00": SlotAvailable,
		"22:00": SlotAvailable,
	}
	for _, s := range slots {
		if want, ok := expected[s.ClockTime]; ok {
			assert.Equal(t, want, s.State, "slot %s", s.ClockTime)
		}
		assert.Equal(t, int64(1), s.VenueID)
		assert.Equal(t, "2025-03-01", s.Date)
	}

	// каталожный порядок
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].ClockTime.IsBefore(slots[i].ClockTime))
	}
}

func TestDeriveSlots_PastWinsOverOccupancy(t *testing.T) {
	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	occupied := make(OccupiedSet)
	for _, c := range DefaultCatalog().ClockTimes() {
		occupied.Add(c)
	}

	for _, s := range DeriveSlots(1, "2025-03-01", occupied, now, DefaultCatalog()) {
		assert.Equal(t, SlotPast, s.State)
		assert.False(t, s.IsBookable())
	}
}

func TestDeriveSlots_NonPastFollowsOccupancy(t *testing.T) {
	now := time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC)
	occupied := OccupiedSet{"08:00": {}, "21:00": {}}

	for _, s := range DeriveSlots(1, "2025-03-01", occupied, now, DefaultCatalog()) {
		if occupied.Has(s.ClockTime) {
			assert.Equal(t, SlotOccupied, s.State)
		} else {
			assert.Equal(t, SlotAvailable, s.State)
			assert.True(t, s.IsBookable())
		}
	}
}

func TestDeriveSlots_MalformedDateDegrades(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	occupied := OccupiedSet{"10:00": {}}

	slots := DeriveSlots(1, "01/03/2025", occupied, now, DefaultCatalog())
	require.Len(t, slots, 15)
	for _, s := range slots {
		if s.ClockTime == "10:00" {
			assert.Equal(t, SlotOccupied, s.State)
		} else {
			assert.Equal(t, SlotAvailable, s.State)
		}
	}
}

func TestDeriveSlots_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	// 12:30 по местному времени площадки
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, loc)

	slots := DeriveSlots(1, "2025-03-01", OccupiedSet{}, now, DefaultCatalog())
	s, ok := FindSlot(slots, "12:00")
	require.True(t, ok)
	assert.Equal(t, SlotPast, s.State)

	s, ok = FindSlot(slots, "13:00")
	require.True(t, ok)
	assert.Equal(t, SlotAvailable, s.State)
}

func TestIsSlotInPast(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.True(t, IsSlotInPast("2025-03-01", "09:00", now))
	assert.False(t, IsSlotInPast("2025-03-01", "10:00", now))
	assert.False(t, IsSlotInPast("garbage", "09:00", now))
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2025-03-01"))
	assert.ErrorIs(t, ValidateDate("2025-13-01"), ErrMalformedInput)
	assert.ErrorIs(t, ValidateDate(""), ErrMalformedInput)
}
