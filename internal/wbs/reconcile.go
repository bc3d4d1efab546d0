package wbs

import (
	"time"

	"github.com/kaplack/siget-sub000/internal/calendar"
)

// Edited-field markers for ReconcileDateTriple.
const (
	EditedNone     = ""
	EditedStart    = "start"
	EditedEnd      = "end"
	EditedDuration = "duration"
)

// DateTriple is a partially filled (start, end, duration) record.
type DateTriple struct {
	StartDate *time.Time
	EndDate   *time.Time
	Duration  *int
}

// ReconcileDateTriple keeps (start, end, duration) mutually consistent after
// an edit. With exactly two fields present the third is derived. With all
// three present, the field that was just edited wins: editing start or
// duration recomputes end, editing end recomputes start. Duration edits
// never pull start backward. Fewer than two fields present returns the
// input unchanged.
func ReconcileDateTriple(t DateTriple, edited string, holidays calendar.Holidays) DateTriple {
	present := 0
	if t.StartDate != nil {
		present++
	}
	if t.EndDate != nil {
		present++
	}
	if t.Duration != nil {
		present++
	}
	if present < 2 {
		return t
	}

	if present == 2 {
		switch {
		case t.Duration == nil:
			d := calendar.CountBusinessDays(*t.StartDate, *t.EndDate, holidays)
			t.Duration = &d
		case t.EndDate == nil:
			e := calendar.AddBusinessDays(*t.StartDate, *t.Duration, holidays)
			t.EndDate = &e
		default:
			s := calendar.SubtractBusinessDays(*t.EndDate, *t.Duration, holidays)
			t.StartDate = &s
		}
		return t
	}

	switch edited {
	case EditedStart, EditedDuration:
		e := calendar.AddBusinessDays(*t.StartDate, *t.Duration, holidays)
		t.EndDate = &e
	case EditedEnd:
		s := calendar.SubtractBusinessDays(*t.EndDate, *t.Duration, holidays)
		t.StartDate = &s
	}
	return t
}
