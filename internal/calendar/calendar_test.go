package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay(t *testing.T) {
	holidays := NewHolidays([]time.Time{date(2025, time.June, 4)}) // Wednesday

	assert.True(t, IsBusinessDay(date(2025, time.June, 2), holidays))   // Monday
	assert.True(t, IsBusinessDay(date(2025, time.June, 6), holidays))   // Friday
	assert.False(t, IsBusinessDay(date(2025, time.June, 7), holidays))  // Saturday
	assert.False(t, IsBusinessDay(date(2025, time.June, 8), holidays))  // Sunday
	assert.False(t, IsBusinessDay(date(2025, time.June, 4), holidays))  // holiday
	assert.True(t, IsBusinessDay(date(2025, time.June, 4), Holidays{})) // same day, no holidays
}

func TestIsBusinessDayIgnoresTimeOfDay(t *testing.T) {
	holidays := NewHolidays([]time.Time{
		time.Date(2025, time.June, 4, 15, 30, 0, 0, time.UTC),
	})
	assert.False(t, IsBusinessDay(time.Date(2025, time.June, 4, 8, 0, 0, 0, time.UTC), holidays))
}

func TestCountBusinessDays(t *testing.T) {
	none := Holidays{}

	tests := []struct {
		name       string
		start, end time.Time
		holidays   Holidays
		want       int
	}{
		{"monday to friday", date(2025, time.June, 2), date(2025, time.June, 6), none, 5},
		{"single business day", date(2025, time.June, 2), date(2025, time.June, 2), none, 1},
		{"single weekend day", date(2025, time.June, 7), date(2025, time.June, 7), none, 0},
		{"across a weekend", date(2025, time.June, 6), date(2025, time.June, 9), none, 2},
		{"end before start", date(2025, time.June, 6), date(2025, time.June, 2), none, 0},
		{"holiday excluded", date(2025, time.June, 2), date(2025, time.June, 6),
			NewHolidays([]time.Time{date(2025, time.June, 4)}), 4},
		{"two full weeks", date(2025, time.June, 2), date(2025, time.June, 13), none, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountBusinessDays(tt.start, tt.end, tt.holidays))
		})
	}
}

func TestAddBusinessDays(t *testing.T) {
	none := Holidays{}

	// Counting is inclusive of the start: 3 business days from Monday lands
	// on Wednesday.
	assert.Equal(t, date(2025, time.June, 4), AddBusinessDays(date(2025, time.June, 2), 3, none))

	// Zero returns the input unchanged.
	assert.Equal(t, date(2025, time.June, 2), AddBusinessDays(date(2025, time.June, 2), 0, none))

	// Starting on a Saturday, the first business day is Monday.
	assert.Equal(t, date(2025, time.June, 9), AddBusinessDays(date(2025, time.June, 7), 1, none))

	// A span crossing a weekend.
	assert.Equal(t, date(2025, time.June, 9), AddBusinessDays(date(2025, time.June, 5), 3, none))

	// Holidays push the landing date out.
	holidays := NewHolidays([]time.Time{date(2025, time.June, 3)})
	assert.Equal(t, date(2025, time.June, 5), AddBusinessDays(date(2025, time.June, 2), 3, holidays))
}

func TestSubtractBusinessDays(t *testing.T) {
	none := Holidays{}

	// Mirror of AddBusinessDays: 3 business days back from Wednesday is
	// Monday.
	assert.Equal(t, date(2025, time.June, 2), SubtractBusinessDays(date(2025, time.June, 4), 3, none))
	assert.Equal(t, date(2025, time.June, 4), SubtractBusinessDays(date(2025, time.June, 4), 0, none))

	// Back across a weekend.
	assert.Equal(t, date(2025, time.June, 6), SubtractBusinessDays(date(2025, time.June, 9), 2, none))
}

func TestAddSubtractRoundTrip(t *testing.T) {
	holidays := NewHolidays([]time.Time{date(2025, time.June, 5)})
	start := date(2025, time.June, 2)

	for n := 1; n <= 15; n++ {
		end := AddBusinessDays(start, n, holidays)
		assert.Equal(t, n, CountBusinessDays(start, end, holidays), "n=%d", n)
		assert.Equal(t, start, SubtractBusinessDays(end, n, holidays), "n=%d", n)
	}
}
