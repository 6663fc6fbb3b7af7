package weekyear

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/klokku/weekcal/pkg/calendar"
)

// WeekDate identifies a day by week-year, week of week-year and day of week.
// Whether it names an actual date depends on the rule and calendar.
type WeekDate struct {
	WeekYear  int
	Week      int
	DayOfWeek calendar.IsoDayOfWeek
}

// WeekDateOf returns the week date of date under rule.
func WeekDateOf(rule Rule, date calendar.Date) WeekDate {
	return WeekDate{
		WeekYear:  rule.GetWeekYear(date),
		Week:      rule.GetWeekOfWeekYear(date),
		DayOfWeek: date.DayOfWeek(),
	}
}

// DateOf returns the date named by wd under rule in cal.
func DateOf(rule Rule, wd WeekDate, cal calendar.System) (calendar.Date, error) {
	return rule.GetLocalDate(wd.WeekYear, wd.Week, wd.DayOfWeek, cal)
}

// ParseWeekDate converts the ISO 8601 extended week date format e.g. "2025-W03-1" to a
// WeekDate. A leading '-' marks a negative week-year. The values are not range checked.
func ParseWeekDate(s string) (WeekDate, error) {
	negative := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), "-")
	if len(parts) != 3 || !strings.HasPrefix(parts[1], "W") {
		return WeekDate{}, fmt.Errorf("invalid week date format: %s", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return WeekDate{}, fmt.Errorf("invalid week-year: %w", err)
	}
	week, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return WeekDate{}, fmt.Errorf("invalid week: %w", err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return WeekDate{}, fmt.Errorf("invalid day of week: %w", err)
	}
	if negative {
		year = -year
	}
	return WeekDate{WeekYear: year, Week: week, DayOfWeek: calendar.IsoDayOfWeek(day)}, nil
}

// Equal returns true when all three components match.
func (w WeekDate) Equal(other WeekDate) bool {
	return w == other
}

// Before reports whether w refers to a day that occurs before other. Days within the same
// week are compared by ISO number, which matches their order only for Monday-based rules.
func (w WeekDate) Before(other WeekDate) bool {
	if w.WeekYear != other.WeekYear {
		return w.WeekYear < other.WeekYear
	}
	if w.Week != other.Week {
		return w.Week < other.Week
	}
	return w.DayOfWeek < other.DayOfWeek
}

// After reports whether w refers to a day that occurs after other.
func (w WeekDate) After(other WeekDate) bool {
	return other.Before(w)
}

// String returns the ISO 8601 extended format e.g. "2025-W03-1"
func (w WeekDate) String() string {
	if w.WeekYear < 0 {
		return fmt.Sprintf("-%04d-W%02d-%d", -w.WeekYear, w.Week, int(w.DayOfWeek))
	}
	return fmt.Sprintf("%04d-W%02d-%d", w.WeekYear, w.Week, int(w.DayOfWeek))
}

// Week is one week of a week-year together with the first and last dates belonging to it.
// Weeks of irregular rules may be shorter than 7 days at either end of the week-year.
type Week struct {
	WeekYear int
	Week     int
	Start    calendar.Date
	End      calendar.Date
	Days     int
}

// Weeks lists every week of weekYear under rule in cal. Days outside the calendar's
// supported range are left out, as are weeks with no day inside it.
func Weeks(rule Rule, weekYear int, cal calendar.System) ([]Week, error) {
	count, err := rule.GetWeeksInWeekYear(weekYear, cal)
	if err != nil {
		return nil, err
	}
	weeks := make([]Week, 0, count)
	for n := 1; n <= count; n++ {
		week := Week{WeekYear: weekYear, Week: n}
		for day := calendar.Monday; day <= calendar.Sunday; day++ {
			date, err := rule.GetLocalDate(weekYear, n, day, cal)
			if err != nil {
				if errors.Is(err, ErrInvalidCombination) || errors.Is(err, ErrOutOfRange) {
					continue
				}
				return nil, err
			}
			if week.Days == 0 || date.Before(week.Start) {
				week.Start = date
			}
			if week.Days == 0 || date.After(week.End) {
				week.End = date
			}
			week.Days++
		}
		if week.Days > 0 {
			weeks = append(weeks, week)
		}
	}
	return weeks, nil
}
