package domain

import (
	"fmt"
	"time"
)

// Gate action selected for a given minute of the day.
type Gate int

const (
	GateNone Gate = iota
	GateCancel
	GateReview
	GateEntry
)

// String returns the string representation of the gate.
func (g Gate) String() string {
	switch g {
	case GateCancel:
		return "cancel"
	case GateReview:
		return "review"
	case GateEntry:
		return "entry"
	default:
		return "none"
	}
}

// ClockTime time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses HH:MM.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q, expected HH:MM", s)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String returns HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Matches reports whether t falls in this exact hour and minute.
func (c ClockTime) Matches(t time.Time) bool {
	return t.Hour() == c.Hour && t.Minute() == c.Minute
}

func (c ClockTime) sinceMidnight() time.Duration {
	return time.Duration(c.Hour)*time.Hour + time.Duration(c.Minute)*time.Minute
}

// Schedule daily trading window and action gates.
type Schedule struct {
	WindowStart ClockTime
	WindowEnd   ClockTime
	CancelAt    ClockTime
	ReviewAt    ClockTime
	EntryAt     ClockTime
}

// DefaultSchedule window 08:55-09:05 with gates at 08:59, 09:00 and 09:01.
func DefaultSchedule() Schedule {
	return Schedule{
		WindowStart: ClockTime{Hour: 8, Minute: 55},
		WindowEnd:   ClockTime{Hour: 9, Minute: 5},
		CancelAt:    ClockTime{Hour: 8, Minute: 59},
		ReviewAt:    ClockTime{Hour: 9, Minute: 0},
		EntryAt:     ClockTime{Hour: 9, Minute: 1},
	}
}

// Validate checks the window is ordered and the gates are distinct.
func (s Schedule) Validate() error {
	if s.WindowEnd.sinceMidnight() < s.WindowStart.sinceMidnight() {
		return fmt.Errorf("window end %s is before window start %s", s.WindowEnd, s.WindowStart)
	}
	if s.CancelAt == s.ReviewAt || s.CancelAt == s.EntryAt || s.ReviewAt == s.EntryAt {
		return fmt.Errorf("gates must be distinct: cancel %s, review %s, entry %s", s.CancelAt, s.ReviewAt, s.EntryAt)
	}
	return nil
}

// InWindow reports whether t is within [WindowStart, WindowEnd], both ends inclusive.
func (s Schedule) InWindow(t time.Time) bool {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	tod := t.Sub(midnight)
	return tod >= s.WindowStart.sinceMidnight() && tod <= s.WindowEnd.sinceMidnight()
}

// GateAt selects the action for t by exact hour and minute.
func (s Schedule) GateAt(t time.Time) Gate {
	switch {
	case s.CancelAt.Matches(t):
		return GateCancel
	case s.ReviewAt.Matches(t):
		return GateReview
	case s.EntryAt.Matches(t):
		return GateEntry
	default:
		return GateNone
	}
}
