package scheduler

import (
	"fmt"
	"time"
)

// TimeWindow describes the portion of a day available for seating, expressed
// in minutes since midnight, together with the fixed length of one slot.
type TimeWindow struct {
	StartMinute int
	EndMinute   int
	SlotMinutes int
}

// SlotsPerDay derives how many whole slots fit into the window. A window with
// a non-positive duration or an end at or before its start yields zero slots;
// that is a reportable outcome for a run, not an error.
func (w TimeWindow) SlotsPerDay() int {
	if w.SlotMinutes <= 0 || w.EndMinute <= w.StartMinute {
		return 0
	}
	return (w.EndMinute - w.StartMinute) / w.SlotMinutes
}

// SlotKey identifies one schedulable window on one calendar day.
type SlotKey struct {
	Date        time.Time
	StartMinute int
	EndMinute   int
}

// Key renders the canonical machine form used for capacity tracking and for
// joining batches with assignments.
func (k SlotKey) Key() string {
	return fmt.Sprintf("%s|%s|%s", k.Date.Format("2006-01-02"), minuteClock(k.StartMinute), minuteClock(k.EndMinute))
}

// Label renders the human readable form used in batch names.
func (k SlotKey) Label() string {
	return fmt.Sprintf("%s %s-%s", k.Date.Format("2006-01-02"), minuteClock(k.StartMinute), minuteClock(k.EndMinute))
}

// slotAt maps a global slot index onto a concrete slot. Index zero is the
// first slot of the start date; each day contributes SlotsPerDay slots before
// the date rolls forward. Callers must ensure SlotsPerDay is positive.
func slotAt(window TimeWindow, startDate time.Time, index int) SlotKey {
	perDay := window.SlotsPerDay()
	dayOffset := index / perDay
	slotInDay := index % perDay
	start := window.StartMinute + slotInDay*window.SlotMinutes
	return SlotKey{
		Date:        startDate.AddDate(0, 0, dayOffset),
		StartMinute: start,
		EndMinute:   start + window.SlotMinutes,
	}
}

func minuteClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
