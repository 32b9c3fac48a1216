package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 3, 1, hour, minute, second, 0, time.UTC)
}

func TestSchedule_InWindow(t *testing.T) {
	s := DefaultSchedule()

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{name: "before window", t: at(8, 54, 59), want: false},
		{name: "window start inclusive", t: at(8, 55, 0), want: true},
		{name: "middle", t: at(9, 0, 30), want: true},
		{name: "window end inclusive", t: at(9, 5, 0), want: true},
		{name: "after window", t: at(9, 5, 1), want: false},
		{name: "evening", t: at(21, 0, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.InWindow(tt.t))
		})
	}
}

func TestSchedule_GateAt(t *testing.T) {
	s := DefaultSchedule()

	assert.Equal(t, GateNone, s.GateAt(at(8, 58, 59)))
	assert.Equal(t, GateCancel, s.GateAt(at(8, 59, 0)))
	assert.Equal(t, GateCancel, s.GateAt(at(8, 59, 59)))
	assert.Equal(t, GateReview, s.GateAt(at(9, 0, 10)))
	assert.Equal(t, GateEntry, s.GateAt(at(9, 1, 0)))
	assert.Equal(t, GateNone, s.GateAt(at(9, 2, 0)))
	assert.Equal(t, GateNone, s.GateAt(at(20, 59, 0)), "hour must match too")
}

func TestSchedule_Validate(t *testing.T) {
	require.NoError(t, DefaultSchedule().Validate())

	s := DefaultSchedule()
	s.WindowEnd = ClockTime{Hour: 8, Minute: 0}
	assert.Error(t, s.Validate())

	s = DefaultSchedule()
	s.EntryAt = s.ReviewAt
	assert.Error(t, s.Validate())
}

func TestParseClockTime(t *testing.T) {
	c, err := ParseClockTime("08:59")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 8, Minute: 59}, c)
	assert.Equal(t, "08:59", c.String())

	_, err = ParseClockTime("25:00")
	assert.Error(t, err)
}
