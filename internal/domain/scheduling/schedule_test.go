package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, "08:30", tod.String())

	_, err = ParseTimeOfDay("8am")
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestDefaultWeeklySchedule(t *testing.T) {
	s := DefaultWeeklySchedule()

	for d := time.Monday; d <= time.Friday; d++ {
		require.True(t, s.IsOpen(d), "weekday %s should be open", d)
		assert.Equal(t, "08:00", s.Day(d).Open.String())
		assert.Equal(t, "18:00", s.Day(d).Close.String())
	}
	assert.False(t, s.IsOpen(time.Saturday))
	assert.False(t, s.IsOpen(time.Sunday))
}

func TestSetDay(t *testing.T) {
	s := DefaultWeeklySchedule()

	require.NoError(t, s.SetDay(time.Saturday, true, 9*60, 13*60))
	assert.True(t, s.IsOpen(time.Saturday))
	assert.Equal(t, "09:00", s.Day(time.Saturday).Open.String())

	require.NoError(t, s.SetDay(time.Monday, false, 0, 0))
	assert.False(t, s.IsOpen(time.Monday))

	// open must precede close
	assert.ErrorIs(t, s.SetDay(time.Tuesday, true, 18*60, 8*60), ErrInvalidSchedule)
	assert.ErrorIs(t, s.SetDay(time.Tuesday, true, 10*60, 10*60), ErrInvalidSchedule)
	// closed days carry no hours
	assert.ErrorIs(t, s.SetDay(time.Wednesday, false, 8*60, 18*60), ErrInvalidSchedule)
}

func TestWorksAt(t *testing.T) {
	s := DefaultWeeklySchedule()

	tests := []struct {
		name   string
		window Window
		want   bool
	}{
		{name: "inside working hours", window: mustWindow(t, at(10, 0), 60), want: true},
		{name: "starts exactly at opening", window: mustWindow(t, at(8, 0), 180), want: true},
		{name: "ends exactly at close", window: mustWindow(t, at(17, 0), 60), want: true},
		{name: "starts before opening", window: mustWindow(t, at(7, 30), 60), want: false},
		{name: "ends after closing", window: mustWindow(t, at(17, 30), 60), want: false},
		{
			name:   "closed day",
			window: mustWindow(t, time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), 30), // Sunday
			want:   false,
		},
		{
			name:   "crosses midnight",
			window: mustWindow(t, at(23, 30), 60),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.WorksAt(tt.window))
		})
	}
}

func TestWorksAtLateSchedule(t *testing.T) {
	// a doctor configured past the clinic cap: WorksAt alone allows it,
	// the clinic-wide cap is the validator's concern
	var s WeeklySchedule
	require.NoError(t, s.SetDay(time.Monday, true, 14*60, 22*60))

	assert.True(t, s.WorksAt(mustWindow(t, at(20, 0), 60)))
	assert.False(t, s.WorksAt(mustWindow(t, at(13, 0), 60)))
}
