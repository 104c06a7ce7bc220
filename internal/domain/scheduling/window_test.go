package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start time.Time, minutes int) Window {
	t.Helper()
	w, err := NewWindow(start, minutes)
	require.NoError(t, err)
	return w
}

func at(hour, minute int) time.Time {
	// Monday 2025-03-03
	return time.Date(2025, 3, 3, hour, minute, 0, 0, time.UTC)
}

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		minutes int
		wantErr bool
	}{
		{name: "on the hour", start: at(10, 0), minutes: 30},
		{name: "on the half hour", start: at(10, 30), minutes: 60},
		{name: "max duration", start: at(8, 0), minutes: 180},
		{name: "zero start", start: time.Time{}, minutes: 30, wantErr: true},
		{name: "minute 15", start: at(10, 15), minutes: 30, wantErr: true},
		{name: "minute 45", start: at(17, 45), minutes: 30, wantErr: true},
		{name: "second precision", start: at(10, 0).Add(10 * time.Second), minutes: 30, wantErr: true},
		{name: "zero duration", start: at(10, 0), minutes: 0, wantErr: true},
		{name: "negative duration", start: at(10, 0), minutes: -30, wantErr: true},
		{name: "not a multiple of 30", start: at(10, 0), minutes: 45, wantErr: true},
		{name: "over max duration", start: at(10, 0), minutes: 210, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWindow(tt.start, tt.minutes)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, w.Start())
			assert.Equal(t, tt.minutes, w.DurationMinutes())
		})
	}
}

func TestWindowAlignedMinutesNeverFail(t *testing.T) {
	// every half-hour boundary with every legal duration constructs cleanly
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 30} {
			for minutes := 30; minutes <= 180; minutes += 30 {
				_, err := NewWindow(at(hour, minute), minutes)
				require.NoError(t, err)
			}
		}
	}
}

func TestWindowEnd(t *testing.T) {
	w := mustWindow(t, at(10, 0), 90)
	assert.Equal(t, at(11, 30), w.End())
}

func TestWindowOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Window
		want bool
	}{
		{
			name: "identical windows",
			a:    mustWindow(t, at(10, 0), 60),
			b:    mustWindow(t, at(10, 0), 60),
			want: true,
		},
		{
			name: "b starts inside a",
			a:    mustWindow(t, at(10, 0), 60),
			b:    mustWindow(t, at(10, 30), 30),
			want: true,
		},
		{
			name: "a contains b",
			a:    mustWindow(t, at(9, 0), 180),
			b:    mustWindow(t, at(10, 0), 30),
			want: true,
		},
		{
			name: "adjacent windows do not overlap",
			a:    mustWindow(t, at(10, 0), 60),
			b:    mustWindow(t, at(11, 0), 30),
			want: false,
		},
		{
			name: "disjoint windows",
			a:    mustWindow(t, at(8, 0), 30),
			b:    mustWindow(t, at(15, 0), 30),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestWindowOverlapsItself(t *testing.T) {
	w := mustWindow(t, at(10, 0), 30)
	assert.True(t, w.Overlaps(w))
}
