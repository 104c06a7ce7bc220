package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScheduleDays(t *testing.T) {
	doctorID := uuid.New()
	days := DefaultScheduleDays(doctorID)
	require.Len(t, days, 7)

	for wd, day := range days {
		assert.Equal(t, doctorID, day.DoctorID)
		assert.Equal(t, wd, day.Weekday)
	}
	assert.False(t, days[time.Sunday].Available)
	assert.False(t, days[time.Saturday].Available)
	assert.True(t, days[time.Wednesday].Available)
	assert.Equal(t, "08:00", days[time.Wednesday].OpenTime)
	assert.Equal(t, "18:00", days[time.Wednesday].CloseTime)
}

func TestDoctorWeeklySchedule(t *testing.T) {
	d := &Doctor{ScheduleDays: []DoctorScheduleDay{
		{Weekday: int(time.Monday), Available: true, OpenTime: "09:00", CloseTime: "14:00"},
		{Weekday: int(time.Tuesday), Available: false},
		// Postgres time columns scan back with seconds
		{Weekday: int(time.Friday), Available: true, OpenTime: "08:00:00", CloseTime: "18:00:00"},
	}}

	s, err := d.WeeklySchedule()
	require.NoError(t, err)
	assert.True(t, s.IsOpen(time.Monday))
	assert.Equal(t, "09:00", s.Day(time.Monday).Open.String())
	assert.Equal(t, "14:00", s.Day(time.Monday).Close.String())
	assert.False(t, s.IsOpen(time.Tuesday))
	assert.False(t, s.IsOpen(time.Wednesday)) // missing row means closed
	assert.True(t, s.IsOpen(time.Friday))
	assert.Equal(t, "18:00", s.Day(time.Friday).Close.String())
}

func TestDoctorWeeklyScheduleInvalidRows(t *testing.T) {
	d := &Doctor{ScheduleDays: []DoctorScheduleDay{
		{Weekday: 9, Available: true, OpenTime: "08:00", CloseTime: "18:00"},
	}}
	_, err := d.WeeklySchedule()
	assert.Error(t, err)

	d = &Doctor{ScheduleDays: []DoctorScheduleDay{
		{Weekday: int(time.Monday), Available: true, OpenTime: "18:00", CloseTime: "08:00"},
	}}
	_, err = d.WeeklySchedule()
	assert.Error(t, err)
}
