package entity

import (
	"testing"
	"time"

	"dental-clinic-api/internal/domain/scheduling"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var apptNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func futureWindow(t *testing.T) scheduling.Window {
	t.Helper()
	w, err := scheduling.NewWindow(time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), 60)
	require.NoError(t, err)
	return w
}

func TestNewAppointment(t *testing.T) {
	a, err := NewAppointment(uuid.New(), uuid.New(), futureWindow(t), "first visit", apptNow)
	require.NoError(t, err)
	assert.Equal(t, AppointmentStatusPending, a.Status)
	assert.Equal(t, 60, a.DurationMinutes)
	assert.Equal(t, "first visit", a.Notes)
}

func TestNewAppointmentRejectsMissingReferences(t *testing.T) {
	w := futureWindow(t)
	_, err := NewAppointment(uuid.Nil, uuid.New(), w, "", apptNow)
	assert.ErrorIs(t, err, ErrMissingReference)
	_, err = NewAppointment(uuid.New(), uuid.Nil, w, "", apptNow)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestNewAppointmentRejectsPastOrPresentStart(t *testing.T) {
	w := futureWindow(t)

	_, err := NewAppointment(uuid.New(), uuid.New(), w, "", w.Start())
	assert.ErrorIs(t, err, ErrPastStart)

	_, err = NewAppointment(uuid.New(), uuid.New(), w, "", w.Start().Add(time.Hour))
	assert.ErrorIs(t, err, ErrPastStart)
}

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		move    func(*Appointment) error
		to      AppointmentStatus
		illegal bool
	}{
		{name: "confirm pending", from: AppointmentStatusPending, move: (*Appointment).Confirm, to: AppointmentStatusConfirmed},
		{name: "confirm confirmed", from: AppointmentStatusConfirmed, move: (*Appointment).Confirm, illegal: true},
		{name: "confirm cancelled", from: AppointmentStatusCancelled, move: (*Appointment).Confirm, illegal: true},
		{name: "start confirmed", from: AppointmentStatusConfirmed, move: (*Appointment).Start, to: AppointmentStatusInProgress},
		{name: "start pending", from: AppointmentStatusPending, move: (*Appointment).Start, illegal: true},
		{name: "complete in progress", from: AppointmentStatusInProgress, move: (*Appointment).Complete, to: AppointmentStatusCompleted},
		{name: "complete pending", from: AppointmentStatusPending, move: (*Appointment).Complete, illegal: true},
		{name: "complete completed", from: AppointmentStatusCompleted, move: (*Appointment).Complete, illegal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			err := tt.move(a)
			if tt.illegal {
				assert.ErrorIs(t, err, ErrIllegalTransition)
				// state is left unchanged on an illegal transition
				assert.Equal(t, tt.from, a.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, a.Status)
		})
	}
}

func TestAppointmentCancel(t *testing.T) {
	for _, from := range []AppointmentStatus{AppointmentStatusPending, AppointmentStatusConfirmed} {
		a := &Appointment{Status: from, Notes: "molar extraction"}
		require.NoError(t, a.Cancel("patient request"))
		assert.Equal(t, AppointmentStatusCancelled, a.Status)
		assert.Equal(t, "molar extraction\nCancelled: patient request", a.Notes)
	}

	// no reason leaves notes untouched
	a := &Appointment{Status: AppointmentStatusPending}
	require.NoError(t, a.Cancel(""))
	assert.Empty(t, a.Notes)

	for _, from := range []AppointmentStatus{AppointmentStatusInProgress, AppointmentStatusCompleted, AppointmentStatusCancelled} {
		a := &Appointment{Status: from}
		assert.ErrorIs(t, a.Cancel("too late"), ErrIllegalTransition)
		assert.Equal(t, from, a.Status)
	}
}

func TestAppointmentIsTerminal(t *testing.T) {
	assert.True(t, (&Appointment{Status: AppointmentStatusCancelled}).IsTerminal())
	assert.True(t, (&Appointment{Status: AppointmentStatusCompleted}).IsTerminal())
	assert.False(t, (&Appointment{Status: AppointmentStatusPending}).IsTerminal())
	assert.False(t, (&Appointment{Status: AppointmentStatusInProgress}).IsTerminal())
}

func TestAppointmentWindow(t *testing.T) {
	a, err := NewAppointment(uuid.New(), uuid.New(), futureWindow(t), "", apptNow)
	require.NoError(t, err)

	w, err := a.Window()
	require.NoError(t, err)
	assert.Equal(t, a.StartTime, w.Start())
	assert.Equal(t, a.StartTime.Add(time.Hour), w.End())
}
