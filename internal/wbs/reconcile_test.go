package wbs

import (
	"testing"
	"time"

	"github.com/kaplack/siget-sub000/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileDerivesMissingField(t *testing.T) {
	none := calendar.Holidays{}
	start := date(2025, time.June, 2) // Monday
	end := date(2025, time.June, 6)   // Friday

	t.Run("duration from dates", func(t *testing.T) {
		got := ReconcileDateTriple(DateTriple{StartDate: start, EndDate: end}, EditedNone, none)
		require.NotNil(t, got.Duration)
		assert.Equal(t, 5, *got.Duration)
	})

	t.Run("end from start and duration", func(t *testing.T) {
		got := ReconcileDateTriple(DateTriple{StartDate: start, Duration: intp(3)}, EditedDuration, none)
		require.NotNil(t, got.EndDate)
		assert.Equal(t, *date(2025, time.June, 4), *got.EndDate)
	})

	t.Run("start from end and duration", func(t *testing.T) {
		got := ReconcileDateTriple(DateTriple{EndDate: end, Duration: intp(5)}, EditedNone, none)
		require.NotNil(t, got.StartDate)
		assert.Equal(t, *start, *got.StartDate)
	})
}

func TestReconcileEditPolicy(t *testing.T) {
	none := calendar.Holidays{}
	full := DateTriple{
		StartDate: date(2025, time.June, 2),
		EndDate:   date(2025, time.June, 6),
		Duration:  intp(5),
	}

	t.Run("editing duration recomputes end, never start", func(t *testing.T) {
		in := full
		in.Duration = intp(3)
		got := ReconcileDateTriple(in, EditedDuration, none)
		assert.Equal(t, *date(2025, time.June, 2), *got.StartDate)
		assert.Equal(t, *date(2025, time.June, 4), *got.EndDate)
	})

	t.Run("editing start recomputes end", func(t *testing.T) {
		in := full
		in.StartDate = date(2025, time.June, 9)
		got := ReconcileDateTriple(in, EditedStart, none)
		assert.Equal(t, *date(2025, time.June, 13), *got.EndDate)
		assert.Equal(t, 5, *got.Duration)
	})

	t.Run("editing end recomputes start", func(t *testing.T) {
		in := full
		in.EndDate = date(2025, time.June, 13)
		got := ReconcileDateTriple(in, EditedEnd, none)
		assert.Equal(t, *date(2025, time.June, 9), *got.StartDate)
		assert.Equal(t, 5, *got.Duration)
	})

	t.Run("no edited field leaves the triple alone", func(t *testing.T) {
		got := ReconcileDateTriple(full, EditedNone, none)
		assert.Equal(t, full, got)
	})
}

func TestReconcileUnderdetermined(t *testing.T) {
	none := calendar.Holidays{}

	got := ReconcileDateTriple(DateTriple{Duration: intp(5)}, EditedDuration, none)
	assert.Nil(t, got.StartDate)
	assert.Nil(t, got.EndDate)

	got = ReconcileDateTriple(DateTriple{}, EditedNone, none)
	assert.Equal(t, DateTriple{}, got)
}

func TestReconcileHonorsHolidays(t *testing.T) {
	holidays := calendar.NewHolidays([]time.Time{*date(2025, time.June, 3)})

	got := ReconcileDateTriple(DateTriple{
		StartDate: date(2025, time.June, 2),
		Duration:  intp(3),
	}, EditedDuration, holidays)
	// Tuesday is a holiday, so the third business day is Thursday.
	assert.Equal(t, *date(2025, time.June, 5), *got.EndDate)
}

func TestReconcileMatchesCalendarIdentity(t *testing.T) {
	holidays := calendar.NewHolidays([]time.Time{*date(2025, time.June, 5)})
	start := date(2025, time.June, 2)

	for d := 1; d <= 10; d++ {
		got := ReconcileDateTriple(DateTriple{StartDate: start, Duration: intp(d)}, EditedDuration, holidays)
		require.NotNil(t, got.EndDate)
		assert.Equal(t, calendar.AddBusinessDays(*start, d, holidays), *got.EndDate)
		assert.Equal(t, d, calendar.CountBusinessDays(*start, *got.EndDate, holidays))
	}
}
