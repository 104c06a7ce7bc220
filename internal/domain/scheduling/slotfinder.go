package scheduling

import (
	"errors"
	"time"
)

// SearchHorizonDays bounds the slot finder's forward scan so it always
// terminates. Callers may retry from a later date for a wider horizon.
const SearchHorizonDays = 30

// ErrNoSlotFound is returned when no free slot exists within the search
// horizon.
var ErrNoSlotFound = errors.New("no available slot found within the search horizon")

// SlotLookup supplies a doctor's existing appointments for one calendar
// date. The finder treats it as an injected collaborator; a lookup error
// aborts the search.
type SlotLookup func(date time.Time) ([]BookedSlot, error)

// FindNextSlot scans forward from the given date, day by day up to
// SearchHorizonDays, for the first half-hour-aligned window of the desired
// duration that lies inside the doctor's working hours, respects the
// clinic-wide rules, starts after now, and collides with no existing
// non-cancelled appointment.
func FindNextSlot(schedule WeeklySchedule, lookup SlotLookup, from time.Time, now time.Time, durationMinutes int) (Window, error) {
	if durationMinutes <= 0 || durationMinutes%SlotMinutes != 0 || durationMinutes > MaxDurationMinutes {
		return Window{}, ErrInvalidTime
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for i := 0; i < SearchHorizonDays; i++ {
		date := day.AddDate(0, 0, i)
		if date.Weekday() == time.Sunday || !schedule.IsOpen(date.Weekday()) {
			continue
		}

		hours := schedule.Day(date.Weekday())
		slots, err := lookup(date)
		if err != nil {
			return Window{}, err
		}

		lastStart := hours.Close - TimeOfDay(durationMinutes)
		for tick := hours.Open; tick <= lastStart; tick += SlotMinutes {
			start := date.Add(time.Duration(tick) * time.Minute)
			if start.Before(now) {
				continue
			}

			candidate, err := NewWindow(start, durationMinutes)
			if err != nil {
				// a doctor's open time off the half-hour grid yields
				// misaligned ticks; no slot exists on this day
				break
			}
			if !schedule.WorksAt(candidate) || endsPastClinicClose(candidate) {
				continue
			}
			if collides(candidate, slots) {
				continue
			}
			return candidate, nil
		}
	}

	return Window{}, ErrNoSlotFound
}

func collides(w Window, slots []BookedSlot) bool {
	for _, slot := range slots {
		if slot.Cancelled {
			continue
		}
		if w.Overlaps(slot.Window) {
			return true
		}
	}
	return false
}
