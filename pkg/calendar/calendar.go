package calendar

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCalendar = errors.New("unknown calendar system")
var ErrInvalidDate = errors.New("invalid date")
var ErrOutOfRange = errors.New("date out of supported range")

// System supplies the day-count arithmetic of a calendar. Day counts are relative to
// 1970-01-01 in the ISO calendar, which is day 0.
//
// Implementations must be immutable so a single value can be shared between goroutines.
type System interface {
	ID() string
	MinYear() int
	MaxYear() int
	// MinDays and MaxDays are the day counts of the first day of MinYear and the last day of MaxYear.
	MinDays() int64
	MaxDays() int64
	// StartOfYearInDays returns the day count of the first day of the given year.
	// It is defined for MinYear()-1 and MaxYear()+1 as well.
	StartOfYearInDays(year int) int64
	DaysInYear(year int) int
	DaysInMonth(year, month int) int
	DaysSinceEpoch(date Date) int64
	DateFromDaysSinceEpoch(days int64) (Date, error)
}

var systems = map[string]System{
	isoID:    Iso(),
	julianID: Julian(),
}

// ForID returns the calendar system registered under id. Lookup is case-insensitive.
func ForID(id string) (System, error) {
	cal, ok := systems[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalendar, id)
	}
	return cal, nil
}

// IDs returns the identifiers accepted by ForID.
func IDs() []string {
	return []string{isoID, julianID}
}

func floorDiv(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func floorMod(x, y int64) int64 {
	return x - floorDiv(x, y)*y
}

// monthDayFromMarchDay converts a zero based day within a March-based year into a month
// and day of month. Both the Gregorian and Julian calendars share this layout.
func monthDayFromMarchDay(doy int64) (month, day int) {
	mp := (5*doy + 2) / 153
	day = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		month = int(mp + 3)
	} else {
		month = int(mp - 9)
	}
	return month, day
}

func marchDayOfYear(month, day int) int64 {
	mp := int64((month + 9) % 12)
	return (153*mp+2)/5 + int64(day) - 1
}

var daysInMonthTable = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(month int, leap bool) int {
	if month == 2 && leap {
		return 29
	}
	return daysInMonthTable[month-1]
}
