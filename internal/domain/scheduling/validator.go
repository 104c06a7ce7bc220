package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClinicClose is the clinic-wide hard cap on appointment end times,
// independent of any doctor's own closing time.
const ClinicClose = TimeOfDay(18 * 60)

// ConflictReason identifies why a proposed window was rejected.
type ConflictReason string

const (
	ReasonPastAppointment   ConflictReason = "PAST_APPOINTMENT"
	ReasonClosedDay         ConflictReason = "CLOSED_DAY"
	ReasonMisalignedStart   ConflictReason = "MISALIGNED_START"
	ReasonPastClosingTime   ConflictReason = "PAST_CLOSING_TIME"
	ReasonDoctorUnavailable ConflictReason = "DOCTOR_UNAVAILABLE"
	ReasonOverlapsExisting  ConflictReason = "OVERLAPS_EXISTING"
)

// ConflictError is the typed rejection of the conflict validator. For
// overlaps it carries the offending appointment's id so callers can render
// conflict details.
type ConflictError struct {
	Reason        ConflictReason
	ConflictingID uuid.UUID
}

func (e *ConflictError) Error() string {
	switch e.Reason {
	case ReasonPastAppointment:
		return "appointment start is in the past"
	case ReasonClosedDay:
		return "the clinic is closed on Sundays"
	case ReasonMisalignedStart:
		return "appointment must start on a half-hour boundary (:00 or :30)"
	case ReasonPastClosingTime:
		return fmt.Sprintf("appointment must end by %s", ClinicClose)
	case ReasonDoctorUnavailable:
		return "the doctor does not work at the requested time"
	case ReasonOverlapsExisting:
		return fmt.Sprintf("appointment overlaps existing appointment %s", e.ConflictingID)
	default:
		return string(e.Reason)
	}
}

// BookedSlot is the minimal view of an existing appointment the validator
// needs: identity, occupied window, and whether it has been cancelled.
type BookedSlot struct {
	ID        uuid.UUID
	Window    Window
	Cancelled bool
}

// Validate checks a proposed window for one doctor against the clinic rules,
// the doctor's weekly schedule and the doctor's existing appointments on the
// same date. Rules are applied in order, short-circuiting on the first
// failure; cheap context-free checks run before the O(n) overlap scan.
//
// existing must already be narrowed by the caller to this doctor's
// appointments on the relevant date; the validator never queries storage.
// excludeID removes the appointment being revised from the collision check
// so an update does not collide with itself; pass uuid.Nil for a new
// booking. now is injected so the past rule is testable.
//
// The validator only guarantees correctness against a consistent snapshot.
// Two concurrent bookings can both pass it; the caller must serialize
// writes per doctor (lock, optimistic version, or uniqueness constraint).
func Validate(now time.Time, w Window, schedule WeeklySchedule, existing []BookedSlot, excludeID uuid.UUID) error {
	if w.Start().Before(now) {
		return &ConflictError{Reason: ReasonPastAppointment}
	}
	if w.Start().Weekday() == time.Sunday {
		return &ConflictError{Reason: ReasonClosedDay}
	}
	if m := w.Start().Minute(); m != 0 && m != 30 {
		return &ConflictError{Reason: ReasonMisalignedStart}
	}
	if endsPastClinicClose(w) {
		return &ConflictError{Reason: ReasonPastClosingTime}
	}
	if !schedule.WorksAt(w) {
		return &ConflictError{Reason: ReasonDoctorUnavailable}
	}

	for _, slot := range existing {
		if slot.Cancelled || slot.ID == excludeID {
			continue
		}
		if w.Overlaps(slot.Window) {
			return &ConflictError{Reason: ReasonOverlapsExisting, ConflictingID: slot.ID}
		}
	}
	return nil
}

// endsPastClinicClose reports whether the window runs past the clinic-wide
// closing time, including windows that spill into the next day.
func endsPastClinicClose(w Window) bool {
	start, end := w.Start(), w.End()
	if start.Year() != end.Year() || start.YearDay() != end.YearDay() {
		return true
	}
	return TimeOfDayOf(end) > ClinicClose
}
