package utils

import (
	"time"

	"github.com/klokku/weekcal/pkg/calendar"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Today returns the current ISO date in loc according to clock.
func Today(clock Clock, loc *time.Location) (calendar.Date, error) {
	return calendar.FromTime(clock.Now().In(loc))
}
