package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandDeduplicatesDays(t *testing.T) {
	s := Schedule{
		ID:        7,
		Date:      "2025-12-10",
		StartTime: "8:00 AM",
		EndTime:   "5:00 PM",
		// Duplicate of the base date plus one real recurrence.
		RecurringDays: []string{"2025-12-17", "2025-12-10"},
	}

	occs, skipped := Expand(s, time.UTC)
	require.Empty(t, skipped)
	require.Len(t, occs, 2)

	assert.Equal(t, "2025-12-10", occs[0].DayKey)
	assert.Equal(t, "2025-12-17", occs[1].DayKey)
	assert.Equal(t, "7-2025-12-10", occs[0].Key)
	assert.Equal(t, "7-2025-12-17", occs[1].Key)
}

func TestExpandGracefulDegradation(t *testing.T) {
	testCases := []struct {
		name         string
		start, end   string
		expectedOccs int
		expectedSkip int
	}{
		{name: "Garbage start", start: "garbage", end: "5:00 PM", expectedOccs: 0, expectedSkip: 1},
		{name: "Garbage end", start: "8:00 AM", end: "???", expectedOccs: 0, expectedSkip: 1},
		{name: "Both garbage", start: "x", end: "y", expectedOccs: 0, expectedSkip: 1},
		{name: "Both valid", start: "8:00 AM", end: "5:00 PM", expectedOccs: 1, expectedSkip: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Schedule{ID: 1, Date: "2025-12-10", StartTime: tc.start, EndTime: tc.end}
			occs, skipped := Expand(s, time.UTC)
			assert.Len(t, occs, tc.expectedOccs)
			assert.Len(t, skipped, tc.expectedSkip)
		})
	}
}

func TestExpandDropsMalformedRecurrenceDates(t *testing.T) {
	s := Schedule{
		ID:            2,
		Date:          "2025-12-10",
		StartTime:     "8:00 AM",
		EndTime:       "9:00 AM",
		RecurringDays: []string{"not-a-date", "", "2025-12-11", "2025-13-99"},
	}

	occs, skipped := Expand(s, time.UTC)
	assert.Empty(t, skipped)
	require.Len(t, occs, 2)
	assert.Equal(t, "2025-12-10", occs[0].DayKey)
	assert.Equal(t, "2025-12-11", occs[1].DayKey)
}

func TestExpandTrimsTimestampedDates(t *testing.T) {
	s := Schedule{
		ID:        3,
		Date:      "2025-12-10T00:00:00Z",
		StartTime: "8:00 AM",
		EndTime:   "9:00 AM",
	}
	occs, skipped := Expand(s, time.UTC)
	require.Empty(t, skipped)
	require.Len(t, occs, 1)
	assert.Equal(t, "2025-12-10", occs[0].DayKey)
	assert.Equal(t, time.Date(2025, 12, 10, 8, 0, 0, 0, time.UTC), occs[0].Start)
}

func TestExpandCarriesScheduleFields(t *testing.T) {
	s := Schedule{
		ID: 9, Date: "2025-12-10", StartTime: "7:00 AM", EndTime: "8:00 AM",
		UserID: 42, ParkingLot: "North Lot", Row: 2, Col: 5,
	}
	occs, _ := Expand(s, time.UTC)
	require.Len(t, occs, 1)
	occ := occs[0]
	assert.Equal(t, int64(42), occ.UserID)
	assert.Equal(t, "North Lot", occ.ParkingLot)
	assert.Equal(t, 2, occ.Row)
	assert.Equal(t, 5, occ.Col)
	assert.True(t, occ.End.After(occ.Start))
}
