package scheduling

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSchedule is returned when a day's working hours violate the
// schedule invariants
var ErrInvalidSchedule = errors.New("invalid schedule")

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: invalid time of day %02d:%02d", ErrInvalidSchedule, hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay parses a "HH:MM" string. A trailing seconds component is
// tolerated.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		if t, err = time.Parse("15:04:05", s); err != nil {
			return 0, fmt.Errorf("%w: invalid time format %q, use HH:MM", ErrInvalidSchedule, s)
		}
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// TimeOfDayOf extracts the wall-clock time of an instant.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DayHours is one weekday's working hours: either closed, or an open
// interval [Open, Close).
type DayHours struct {
	Available bool
	Open      TimeOfDay
	Close     TimeOfDay
}

// WeeklySchedule is a doctor's working hours, exactly one entry per weekday,
// indexed by time.Weekday (Sunday = 0).
type WeeklySchedule [7]DayHours

// DefaultWeeklySchedule returns the schedule installed at doctor creation:
// Monday through Friday 08:00-18:00, weekends closed.
func DefaultWeeklySchedule() WeeklySchedule {
	var s WeeklySchedule
	for d := time.Monday; d <= time.Friday; d++ {
		s[d] = DayHours{Available: true, Open: 8 * 60, Close: 18 * 60}
	}
	return s
}

// IsOpen reports whether the doctor works at all on the given weekday.
func (s WeeklySchedule) IsOpen(day time.Weekday) bool {
	return s[day].Available
}

// Day returns the entry for one weekday.
func (s WeeklySchedule) Day(day time.Weekday) DayHours {
	return s[day]
}

// SetDay replaces one weekday's entry. An unavailable day must carry no
// hours; an available day requires open < close.
func (s *WeeklySchedule) SetDay(day time.Weekday, available bool, open, close TimeOfDay) error {
	if day < time.Sunday || day > time.Saturday {
		return fmt.Errorf("%w: invalid weekday %d", ErrInvalidSchedule, day)
	}
	if !available {
		if open != 0 || close != 0 {
			return fmt.Errorf("%w: an unavailable day cannot have working hours", ErrInvalidSchedule)
		}
		s[day] = DayHours{}
		return nil
	}
	if open >= close {
		return fmt.Errorf("%w: opening time %s must be before closing time %s", ErrInvalidSchedule, open, close)
	}
	s[day] = DayHours{Available: true, Open: open, Close: close}
	return nil
}

// WorksAt reports whether the whole window falls inside the doctor's working
// hours on the window's day. A window crossing midnight is never valid:
// closing time is same-day.
func (s WeeklySchedule) WorksAt(w Window) bool {
	day := s[w.Start().Weekday()]
	if !day.Available {
		return false
	}

	start, end := w.Start(), w.End()
	if start.Year() != end.Year() || start.YearDay() != end.YearDay() {
		// crossing midnight is never valid, closing time is same-day
		return false
	}

	return TimeOfDayOf(start) >= day.Open && TimeOfDayOf(end) <= day.Close
}
