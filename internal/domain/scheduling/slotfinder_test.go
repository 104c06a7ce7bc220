package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noAppointments(time.Time) ([]BookedSlot, error) {
	return nil, nil
}

func fixedAppointments(slots []BookedSlot) SlotLookup {
	return func(date time.Time) ([]BookedSlot, error) {
		var onDate []BookedSlot
		for _, s := range slots {
			start := s.Window.Start()
			if start.Year() == date.Year() && start.YearDay() == date.YearDay() {
				onDate = append(onDate, s)
			}
		}
		return onDate, nil
	}
}

func TestFindNextSlotEmptyCalendar(t *testing.T) {
	s := DefaultWeeklySchedule()
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	w, err := FindNextSlot(s, noAppointments, monday, testNow, 30)
	require.NoError(t, err)
	assert.Equal(t, at(8, 0), w.Start())
	assert.Equal(t, 30, w.DurationMinutes())
}

func TestFindNextSlotSkipsBooked(t *testing.T) {
	s := DefaultWeeklySchedule()
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	booked := fixedAppointments([]BookedSlot{
		{ID: uuid.New(), Window: mustWindow(t, at(8, 0), 60)},
		{ID: uuid.New(), Window: mustWindow(t, at(9, 30), 30)},
	})

	w, err := FindNextSlot(s, booked, monday, testNow, 30)
	require.NoError(t, err)
	// 08:00-09:00 taken, 09:00 free, even though 09:30 is taken again
	assert.Equal(t, at(9, 0), w.Start())
}

func TestFindNextSlotFitsDurationBeforeClose(t *testing.T) {
	// only a 30-minute hole before close: a 90-minute request must roll
	// over to the next day
	var s WeeklySchedule
	require.NoError(t, s.SetDay(time.Monday, true, 17*60+30, 18*60))
	require.NoError(t, s.SetDay(time.Tuesday, true, 8*60, 18*60))
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	w, err := FindNextSlot(s, noAppointments, monday, testNow, 90)
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, w.Start().Weekday())
	assert.Equal(t, at(8, 0).AddDate(0, 0, 1), w.Start())
}

func TestFindNextSlotSkipsSunday(t *testing.T) {
	// doctor claims Sundays, the clinic-wide closure still skips them
	var s WeeklySchedule
	require.NoError(t, s.SetDay(time.Sunday, true, 8*60, 18*60))
	require.NoError(t, s.SetDay(time.Monday, true, 8*60, 18*60))
	sunday := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	w, err := FindNextSlot(s, noAppointments, sunday, testNow, 30)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, w.Start().Weekday())
}

func TestFindNextSlotStartsAfterNow(t *testing.T) {
	s := DefaultWeeklySchedule()
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	now := at(11, 10)

	w, err := FindNextSlot(s, noAppointments, monday, now, 30)
	require.NoError(t, err)
	assert.Equal(t, at(11, 30), w.Start())
}

func TestFindNextSlotRespectsClinicCap(t *testing.T) {
	// doctor open 17:30-22:00; every 60-minute candidate ends past the
	// 18:00 clinic cap, on every Monday in the horizon
	var s WeeklySchedule
	require.NoError(t, s.SetDay(time.Monday, true, 17*60+30, 22*60))
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	_, err := FindNextSlot(s, noAppointments, monday, testNow, 60)
	assert.ErrorIs(t, err, ErrNoSlotFound)
}

func TestFindNextSlotNoOpenHours(t *testing.T) {
	var s WeeklySchedule // closed all week
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := FindNextSlot(s, noAppointments, monday, testNow, 30)
		assert.ErrorIs(t, err, ErrNoSlotFound)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("slot finder did not terminate within the day bound")
	}
}

func TestFindNextSlotFullyBookedHorizon(t *testing.T) {
	// every tick of every day occupied: bounded search gives up after 30 days
	var s WeeklySchedule
	require.NoError(t, s.SetDay(time.Monday, true, 8*60, 9*60))

	var calls int
	fullyBooked := func(date time.Time) ([]BookedSlot, error) {
		calls++
		w, err := NewWindow(date.Add(8*time.Hour), 60)
		if err != nil {
			return nil, err
		}
		return []BookedSlot{{ID: uuid.New(), Window: w}}, nil
	}

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	_, err := FindNextSlot(s, fullyBooked, monday, testNow, 30)
	assert.ErrorIs(t, err, ErrNoSlotFound)
	assert.LessOrEqual(t, calls, SearchHorizonDays)
}

func TestFindNextSlotInvalidDuration(t *testing.T) {
	s := DefaultWeeklySchedule()
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	for _, minutes := range []int{0, -30, 45, 210} {
		_, err := FindNextSlot(s, noAppointments, monday, testNow, minutes)
		assert.ErrorIs(t, err, ErrInvalidTime)
	}
}

func TestFindNextSlotPropagatesLookupError(t *testing.T) {
	s := DefaultWeeklySchedule()
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	lookupErr := errors.New("storage unavailable")

	_, err := FindNextSlot(s, func(time.Time) ([]BookedSlot, error) {
		return nil, lookupErr
	}, monday, testNow, 30)
	assert.ErrorIs(t, err, lookupErr)
}
