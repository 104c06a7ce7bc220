package scheduling

import (
	"errors"
	"fmt"
	"time"
)

// Clinic-wide scheduling constants
const (
	// SlotMinutes is the granularity of the booking grid
	SlotMinutes = 30

	// MaxDurationMinutes is the longest bookable appointment
	MaxDurationMinutes = 180
)

// ErrInvalidTime is returned when a window cannot be constructed from the
// given start/duration
var ErrInvalidTime = errors.New("invalid appointment time")

// Window is an immutable start instant plus a duration in whole 30-minute
// slots. Build a new one instead of mutating.
type Window struct {
	start           time.Time
	durationMinutes int
}

// NewWindow validates and constructs a Window.
// The start must fall on a half-hour boundary (:00 or :30) and the duration
// must be a positive multiple of 30 minutes, at most 180.
// There is deliberately no past-check here: windows loaded from storage
// legitimately start in the past, and the conflict validator applies the
// past rule with an injectable now.
func NewWindow(start time.Time, durationMinutes int) (Window, error) {
	if start.IsZero() {
		return Window{}, fmt.Errorf("%w: start time is required", ErrInvalidTime)
	}
	if m := start.Minute(); m != 0 && m != 30 {
		return Window{}, fmt.Errorf("%w: start must be on a half-hour boundary (:00 or :30), got :%02d", ErrInvalidTime, m)
	}
	if start.Second() != 0 || start.Nanosecond() != 0 {
		return Window{}, fmt.Errorf("%w: start must have minute precision", ErrInvalidTime)
	}
	if durationMinutes <= 0 || durationMinutes%SlotMinutes != 0 {
		return Window{}, fmt.Errorf("%w: duration must be a positive multiple of %d minutes, got %d", ErrInvalidTime, SlotMinutes, durationMinutes)
	}
	if durationMinutes > MaxDurationMinutes {
		return Window{}, fmt.Errorf("%w: duration must not exceed %d minutes, got %d", ErrInvalidTime, MaxDurationMinutes, durationMinutes)
	}

	return Window{start: start, durationMinutes: durationMinutes}, nil
}

// Start returns the window's start instant.
func (w Window) Start() time.Time {
	return w.start
}

// DurationMinutes returns the window's length in minutes.
func (w Window) DurationMinutes() int {
	return w.durationMinutes
}

// End returns the first instant after the window: start + duration.
func (w Window) End() time.Time {
	return w.start.Add(time.Duration(w.durationMinutes) * time.Minute)
}

// IsZero reports whether the window is the zero value.
func (w Window) IsZero() bool {
	return w.start.IsZero()
}

// Overlaps reports whether the two windows share any non-zero-width
// intersection, using half-open interval semantics: a window ending exactly
// when another starts does NOT overlap. This is the single source of truth
// for time-range collisions.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.End()) && other.start.Before(w.End())
}
