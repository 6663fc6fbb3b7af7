// Package weekyear converts between calendar dates and week dates
// (week-year, week-of-week-year, day-of-week).
//
// A Rule decides where each week-year begins. The ISO-8601 rule, custom rules built from
// a minimum number of days in the first week, and rules compatible with the legacy
// CalendarWeekRule values are all SimpleRule values. Rules are immutable and safe for
// concurrent use.
package weekyear

import (
	"errors"

	"github.com/klokku/weekcal/pkg/calendar"
)

// ErrInvalidConfiguration is returned when a rule is built from invalid parameters.
var ErrInvalidConfiguration = errors.New("invalid week year rule configuration")

// ErrOutOfRange is returned when a week-year, week or day of week is outside its valid
// domain for the rule and calendar.
var ErrOutOfRange = errors.New("week date value out of range")

// ErrInvalidCombination is returned when an in-range week date does not name any date,
// which happens in the truncated boundary weeks of irregular rules.
var ErrInvalidCombination = errors.New("week date does not exist under rule")

// Rule maps dates onto week dates and back.
type Rule interface {
	// GetLocalDate returns the date identified by the week date in cal.
	GetLocalDate(weekYear, weekOfWeekYear int, dayOfWeek calendar.IsoDayOfWeek, cal calendar.System) (calendar.Date, error)
	// GetWeekOfWeekYear returns the 1-based week of the week-year containing date.
	GetWeekOfWeekYear(date calendar.Date) int
	// GetWeeksInWeekYear returns the number of weeks in weekYear.
	GetWeeksInWeekYear(weekYear int, cal calendar.System) (int, error)
	// GetWeekYear returns the week-year containing date.
	GetWeekYear(date calendar.Date) int
}
