package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IsoDayOfWeek numbers the days of the week the ISO-8601 way, Monday=1 to Sunday=7.
// The zero value is not a valid day.
type IsoDayOfWeek int

const (
	Monday IsoDayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// IsValid reports whether d is in [Monday, Sunday].
func (d IsoDayOfWeek) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// Weekday converts d to the time package's Sunday-based numbering.
func (d IsoDayOfWeek) Weekday() time.Weekday {
	return time.Weekday(int(d) % 7)
}

func (d IsoDayOfWeek) String() string {
	if !d.IsValid() {
		return "IsoDayOfWeek(" + strconv.Itoa(int(d)) + ")"
	}
	return d.Weekday().String()
}

// IsoDayOfWeekFromWeekday converts a time.Weekday (Sunday=0) to its ISO number.
func IsoDayOfWeekFromWeekday(w time.Weekday) (IsoDayOfWeek, error) {
	if w < time.Sunday || w > time.Saturday {
		return 0, fmt.Errorf("invalid weekday: %d", w)
	}
	if w == time.Sunday {
		return Sunday, nil
	}
	return IsoDayOfWeek(w), nil
}

// ParseIsoDayOfWeek accepts an English day name ("monday", "Mon") or an ISO number ("1".."7").
func ParseIsoDayOfWeek(s string) (IsoDayOfWeek, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		d := IsoDayOfWeek(n)
		if !d.IsValid() {
			return 0, fmt.Errorf("day of week %d not in [1, 7]", n)
		}
		return d, nil
	}
	if len(s) >= 3 {
		for d := Monday; d <= Sunday; d++ {
			if strings.HasPrefix(strings.ToLower(d.String()), s) {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid day of week: %q", s)
}

// DayOfWeekFromDays returns the day of the week of a day count. Day 0 (1970-01-01) was
// a Thursday; the modulo is Euclidean so negative day counts behave the same way.
func DayOfWeekFromDays(days int64) IsoDayOfWeek {
	return IsoDayOfWeek(1 + floorMod(days+3, 7))
}
