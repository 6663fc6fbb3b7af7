package weekyear

import (
	"fmt"
	"strings"
	"time"

	"github.com/klokku/weekcal/pkg/calendar"
)

// CalendarWeekRule is the legacy way of describing the first week of a year. The numeric
// values match the ones used by .NET's System.Globalization.CalendarWeekRule.
type CalendarWeekRule int

const (
	// FirstDay makes the week containing January 1st week 1.
	FirstDay CalendarWeekRule = iota
	// FirstFullWeek makes the first week entirely inside the year week 1.
	FirstFullWeek
	// FirstFourDayWeek makes the first week with at least four days in the year week 1.
	FirstFourDayWeek
)

func (k CalendarWeekRule) String() string {
	switch k {
	case FirstDay:
		return "firstDay"
	case FirstFullWeek:
		return "firstFullWeek"
	case FirstFourDayWeek:
		return "firstFourDayWeek"
	}
	return fmt.Sprintf("CalendarWeekRule(%d)", int(k))
}

// ParseCalendarWeekRule accepts the names returned by CalendarWeekRule.String, ignoring case.
func ParseCalendarWeekRule(s string) (CalendarWeekRule, error) {
	for _, k := range []CalendarWeekRule{FirstDay, FirstFullWeek, FirstFourDayWeek} {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown calendar week rule %q", ErrInvalidConfiguration, s)
}

var isoRule = SimpleRule{minDaysInFirstWeek: 4, firstDayOfWeek: calendar.Monday}

// Iso returns the ISO-8601 rule: weeks start on Monday and week 1 is the first week with
// at least four days in the new year.
func Iso() SimpleRule {
	return isoRule
}

// New returns a rule with the given parameters.
func New(minDaysInFirstWeek int, firstDayOfWeek calendar.IsoDayOfWeek, irregularWeeks bool) (SimpleRule, error) {
	if minDaysInFirstWeek < 1 || minDaysInFirstWeek > 7 {
		return SimpleRule{}, fmt.Errorf("%w: minDaysInFirstWeek %d not in [1, 7]", ErrInvalidConfiguration, minDaysInFirstWeek)
	}
	if !firstDayOfWeek.IsValid() {
		return SimpleRule{}, fmt.Errorf("%w: firstDayOfWeek %d not in [1, 7]", ErrInvalidConfiguration, firstDayOfWeek)
	}
	return SimpleRule{
		minDaysInFirstWeek: minDaysInFirstWeek,
		firstDayOfWeek:     firstDayOfWeek,
		irregularWeeks:     irregularWeeks,
	}, nil
}

// ForMinDaysInFirstWeek returns a regular rule with weeks starting on Monday.
func ForMinDaysInFirstWeek(minDaysInFirstWeek int) (SimpleRule, error) {
	return New(minDaysInFirstWeek, calendar.Monday, false)
}

// ForMinDaysInFirstWeekAndDay returns a regular rule with weeks starting on firstDayOfWeek.
func ForMinDaysInFirstWeekAndDay(minDaysInFirstWeek int, firstDayOfWeek calendar.IsoDayOfWeek) (SimpleRule, error) {
	return New(minDaysInFirstWeek, firstDayOfWeek, false)
}

// FromCalendarWeekRule returns the irregular rule equivalent to a legacy week rule.
// FirstDay, FirstFourDayWeek and FirstFullWeek need 1, 4 and 7 days in the first week.
func FromCalendarWeekRule(kind CalendarWeekRule, firstDayOfWeek time.Weekday) (SimpleRule, error) {
	var minDays int
	switch kind {
	case FirstDay:
		minDays = 1
	case FirstFourDayWeek:
		minDays = 4
	case FirstFullWeek:
		minDays = 7
	default:
		return SimpleRule{}, fmt.Errorf("%w: unsupported calendar week rule %d", ErrInvalidConfiguration, int(kind))
	}
	isoDay, err := calendar.IsoDayOfWeekFromWeekday(firstDayOfWeek)
	if err != nil {
		return SimpleRule{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return New(minDays, isoDay, true)
}
