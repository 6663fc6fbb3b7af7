package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date within a particular calendar System. It is an immutable
// value; the zero value is not a valid date.
type Date struct {
	calendar System
	year     int
	month    int
	day      int
}

// NewDate validates year, month and day against cal and returns the date.
func NewDate(cal System, year, month, day int) (Date, error) {
	if cal == nil {
		return Date{}, fmt.Errorf("%w: no calendar system", ErrInvalidDate)
	}
	if year < cal.MinYear() || year > cal.MaxYear() {
		return Date{}, fmt.Errorf("%w: year %d not in [%d, %d] for %s calendar",
			ErrOutOfRange, year, cal.MinYear(), cal.MaxYear(), cal.ID())
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d not in [1, 12]", ErrInvalidDate, month)
	}
	if maxDay := cal.DaysInMonth(year, month); day < 1 || day > maxDay {
		return Date{}, fmt.Errorf("%w: day %d not in [1, %d] for %04d-%02d", ErrInvalidDate, day, maxDay, year, month)
	}
	return Date{calendar: cal, year: year, month: month, day: day}, nil
}

// FromTime returns the ISO date of t in t's location. Years outside the ISO calendar's
// range give ErrOutOfRange.
func FromTime(t time.Time) (Date, error) {
	year, month, day := t.Date()
	return NewDate(Iso(), year, int(month), day)
}

// ParseIsoDate parses a "YYYY-MM-DD" string in the ISO calendar. A leading '-' marks a
// negative year.
func ParseIsoDate(s string) (Date, error) {
	return ParseDate(Iso(), s)
}

// ParseDate parses a "YYYY-MM-DD" string in the given calendar. Every field must have
// exactly the digits shown; a leading '-' marks a negative year.
func ParseDate(cal System, s string) (Date, error) {
	negative := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q is not in YYYY-MM-DD format", ErrInvalidDate, s)
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || len(p) != dateFieldWidths[i] || strings.ContainsAny(p, "+-") {
			return Date{}, fmt.Errorf("%w: %q is not in YYYY-MM-DD format", ErrInvalidDate, s)
		}
		fields[i] = n
	}
	if negative {
		fields[0] = -fields[0]
	}
	return NewDate(cal, fields[0], fields[1], fields[2])
}

var dateFieldWidths = [3]int{4, 2, 2}

// FromDays returns the date for a day count in cal.
func FromDays(cal System, days int64) (Date, error) {
	return cal.DateFromDaysSinceEpoch(days)
}

func (d Date) Calendar() System { return d.calendar }
func (d Date) Year() int        { return d.year }
func (d Date) Month() int       { return d.month }
func (d Date) Day() int         { return d.day }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d.calendar == nil
}

// DaysSinceEpoch returns the day count of d relative to 1970-01-01 (ISO).
func (d Date) DaysSinceEpoch() int64 {
	return d.calendar.DaysSinceEpoch(d)
}

// DayOfWeek returns the ISO day of the week of d.
func (d Date) DayOfWeek() IsoDayOfWeek {
	return DayOfWeekFromDays(d.DaysSinceEpoch())
}

// PlusDays returns the date n days after d (before it when n is negative).
func (d Date) PlusDays(n int) (Date, error) {
	return d.calendar.DateFromDaysSinceEpoch(d.DaysSinceEpoch() + int64(n))
}

// WithCalendar returns the same day expressed in another calendar system.
func (d Date) WithCalendar(cal System) (Date, error) {
	return cal.DateFromDaysSinceEpoch(d.DaysSinceEpoch())
}

// Equal reports whether d and other fall on the same day in the same calendar system.
func (d Date) Equal(other Date) bool {
	return d == other
}

// Before reports whether d is an earlier day than other, regardless of calendar system.
func (d Date) Before(other Date) bool {
	return d.DaysSinceEpoch() < other.DaysSinceEpoch()
}

// After reports whether d is a later day than other, regardless of calendar system.
func (d Date) After(other Date) bool {
	return d.DaysSinceEpoch() > other.DaysSinceEpoch()
}

// Time returns midnight UTC of d. Only ISO dates map directly onto time.Time; other
// calendars are converted through their day count.
func (d Date) Time() time.Time {
	days := d.DaysSinceEpoch()
	return time.Unix(days*24*60*60, 0).UTC()
}

// String returns d as "YYYY-MM-DD".
func (d Date) String() string {
	if d.IsZero() {
		return "0000-00-00"
	}
	if d.year < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -d.year, d.month, d.day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func rangeError(cal System, days int64) error {
	return fmt.Errorf("%w: day %d not in [%d, %d] for %s calendar",
		ErrOutOfRange, days, cal.MinDays(), cal.MaxDays(), cal.ID())
}
