package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed clock: Saturday 2025-03-01 12:00 UTC, so Monday 2025-03-03 is in the
// future for every scenario
var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func requireReason(t *testing.T, err error, reason ConflictReason) *ConflictError {
	t.Helper()
	require.Error(t, err)
	conflict, ok := err.(*ConflictError)
	require.True(t, ok, "expected *ConflictError, got %T", err)
	assert.Equal(t, reason, conflict.Reason)
	return conflict
}

func TestValidateAccepts(t *testing.T) {
	s := DefaultWeeklySchedule()
	err := Validate(testNow, mustWindow(t, at(10, 0), 60), s, nil, uuid.Nil)
	assert.NoError(t, err)
}

func TestValidatePastAppointment(t *testing.T) {
	s := DefaultWeeklySchedule()
	now := at(12, 0)
	requireReason(t, Validate(now, mustWindow(t, at(10, 0), 30), s, nil, uuid.Nil), ReasonPastAppointment)
}

func TestValidateClosedDay(t *testing.T) {
	s := DefaultWeeklySchedule()
	sunday := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	requireReason(t, Validate(testNow, mustWindow(t, sunday, 30), s, nil, uuid.Nil), ReasonClosedDay)
}

func TestValidateClosedDayEvenIfDoctorWorksSundays(t *testing.T) {
	// the clinic-wide Sunday closure wins over the doctor's own schedule
	s := DefaultWeeklySchedule()
	require.NoError(t, s.SetDay(time.Sunday, true, 8*60, 18*60))

	sunday := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	requireReason(t, Validate(testNow, mustWindow(t, sunday, 30), s, nil, uuid.Nil), ReasonClosedDay)
}

func TestValidateMisalignedStart(t *testing.T) {
	// a window built from persisted data may carry any minute; the
	// validator re-checks alignment independently of the constructor
	s := DefaultWeeklySchedule()
	w := Window{start: at(17, 45), durationMinutes: 30}
	requireReason(t, Validate(testNow, w, s, nil, uuid.Nil), ReasonMisalignedStart)
}

func TestValidatePastClosingTime(t *testing.T) {
	s := DefaultWeeklySchedule()
	// 17:30 + 60min ends 18:30, past the clinic-wide cap, even though it
	// starts inside the doctor's hours
	requireReason(t, Validate(testNow, mustWindow(t, at(17, 30), 60), s, nil, uuid.Nil), ReasonPastClosingTime)
}

func TestValidatePastClosingTimeWinsOverLateDoctor(t *testing.T) {
	// doctor configured until 22:00: the tighter clinic cap still rejects
	s := DefaultWeeklySchedule()
	require.NoError(t, s.SetDay(time.Monday, true, 8*60, 22*60))
	requireReason(t, Validate(testNow, mustWindow(t, at(19, 0), 30), s, nil, uuid.Nil), ReasonPastClosingTime)
}

func TestValidateDoctorUnavailable(t *testing.T) {
	s := DefaultWeeklySchedule()

	// Saturday is closed in the default schedule
	saturday := time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)
	requireReason(t, Validate(testNow, mustWindow(t, saturday, 30), s, nil, uuid.Nil), ReasonDoctorUnavailable)

	// doctor starts at 10:00 on Mondays
	require.NoError(t, s.SetDay(time.Monday, true, 10*60, 18*60))
	requireReason(t, Validate(testNow, mustWindow(t, at(8, 0), 30), s, nil, uuid.Nil), ReasonDoctorUnavailable)
}

func TestValidateOverlapsExisting(t *testing.T) {
	s := DefaultWeeklySchedule()
	existingID := uuid.New()
	existing := []BookedSlot{{ID: existingID, Window: mustWindow(t, at(10, 0), 60)}}

	// 10:30 starts before the existing 11:00 end
	conflict := requireReason(t, Validate(testNow, mustWindow(t, at(10, 30), 30), s, existing, uuid.Nil), ReasonOverlapsExisting)
	assert.Equal(t, existingID, conflict.ConflictingID)

	// exactly adjacent at 11:00, no overlap
	assert.NoError(t, Validate(testNow, mustWindow(t, at(11, 0), 30), s, existing, uuid.Nil))
}

func TestValidateIgnoresCancelled(t *testing.T) {
	s := DefaultWeeklySchedule()
	existing := []BookedSlot{{ID: uuid.New(), Window: mustWindow(t, at(10, 0), 60), Cancelled: true}}
	assert.NoError(t, Validate(testNow, mustWindow(t, at(10, 0), 60), s, existing, uuid.Nil))
}

func TestValidateExcludesRevisedAppointment(t *testing.T) {
	// revalidating appointment X's own unchanged window must accept once X
	// itself is excluded from the collision scan
	s := DefaultWeeklySchedule()
	ownID := uuid.New()
	otherID := uuid.New()
	existing := []BookedSlot{
		{ID: ownID, Window: mustWindow(t, at(10, 0), 60)},
		{ID: otherID, Window: mustWindow(t, at(14, 0), 60)},
	}

	assert.NoError(t, Validate(testNow, mustWindow(t, at(10, 0), 60), s, existing, ownID))

	// but it still collides with everyone else
	conflict := requireReason(t, Validate(testNow, mustWindow(t, at(14, 30), 30), s, existing, ownID), ReasonOverlapsExisting)
	assert.Equal(t, otherID, conflict.ConflictingID)
}

func TestValidateIsDeterministic(t *testing.T) {
	s := DefaultWeeklySchedule()
	existing := []BookedSlot{{ID: uuid.New(), Window: mustWindow(t, at(9, 0), 90)}}
	w := mustWindow(t, at(10, 0), 60)

	first := Validate(testNow, w, s, existing, uuid.Nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Validate(testNow, w, s, existing, uuid.Nil))
	}
}

func TestValidateRuleOrder(t *testing.T) {
	// a Sunday window in the past must report the past rule, not the
	// closed-day rule: cheap context-free checks run in a fixed order
	s := DefaultWeeklySchedule()
	pastSunday := time.Date(2025, 2, 23, 10, 0, 0, 0, time.UTC)
	requireReason(t, Validate(testNow, mustWindow(t, pastSunday, 30), s, nil, uuid.Nil), ReasonPastAppointment)
}
