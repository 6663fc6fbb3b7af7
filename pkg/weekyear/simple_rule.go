package weekyear

import (
	"fmt"

	"github.com/klokku/weekcal/pkg/calendar"
)

// SimpleRule numbers weeks starting on a fixed day of the week. Week 1 of week-year X is
// the first week with at least minDaysInFirstWeek days in calendar year X.
//
// With regular weeks every week has 7 days and boundary weeks straddle calendar years.
// With irregular weeks the last week of a week-year stops at the end of the calendar
// year, so a date never belongs to a later week-year than its calendar year.
//
// Day counts never overflow: every week-year is checked against the calendar's year range
// before any arithmetic is done on it.
type SimpleRule struct {
	minDaysInFirstWeek int
	firstDayOfWeek     calendar.IsoDayOfWeek
	irregularWeeks     bool
}

var _ Rule = SimpleRule{}

func (r SimpleRule) MinDaysInFirstWeek() int                { return r.minDaysInFirstWeek }
func (r SimpleRule) FirstDayOfWeek() calendar.IsoDayOfWeek { return r.firstDayOfWeek }
func (r SimpleRule) IrregularWeeks() bool                   { return r.irregularWeeks }

func (r SimpleRule) String() string {
	weeks := "regular"
	if r.irregularWeeks {
		weeks = "irregular"
	}
	return fmt.Sprintf("minDays=%d firstDay=%s %s", r.minDaysInFirstWeek, r.firstDayOfWeek, weeks)
}

func (r SimpleRule) GetLocalDate(weekYear, weekOfWeekYear int, dayOfWeek calendar.IsoDayOfWeek, cal calendar.System) (calendar.Date, error) {
	if err := r.validateWeekYear(weekYear, cal); err != nil {
		return calendar.Date{}, err
	}
	if !dayOfWeek.IsValid() {
		return calendar.Date{}, fmt.Errorf("%w: dayOfWeek %d not in [1, 7]", ErrOutOfRange, dayOfWeek)
	}
	maxWeeks := r.weeksInWeekYear(weekYear, cal)
	if weekOfWeekYear < 1 || weekOfWeekYear > maxWeeks {
		return calendar.Date{}, fmt.Errorf("%w: weekOfWeekYear %d not in [1, %d] for week-year %d",
			ErrOutOfRange, weekOfWeekYear, maxWeeks, weekYear)
	}

	startOfWeekYear := r.weekYearDaysSinceEpoch(cal, weekYear)
	days := startOfWeekYear + int64(weekOfWeekYear-1)*7 + r.daysIntoWeek(dayOfWeek)
	if days < cal.MinDays() || days > cal.MaxDays() {
		return calendar.Date{}, fmt.Errorf("%w: week date %d-W%02d-%d is outside the %s calendar",
			ErrOutOfRange, weekYear, weekOfWeekYear, dayOfWeek, cal.ID())
	}
	date, err := cal.DateFromDaysSinceEpoch(days)
	if err != nil {
		return calendar.Date{}, err
	}

	// A short boundary week has no days in the neighbouring calendar year.
	if r.irregularWeeks && date.Year() != weekYear && r.GetWeekYear(date) != weekYear {
		return calendar.Date{}, fmt.Errorf("%w: %d-W%02d-%d (%s)",
			ErrInvalidCombination, weekYear, weekOfWeekYear, dayOfWeek, r)
	}
	return date, nil
}

func (r SimpleRule) GetWeekOfWeekYear(date calendar.Date) int {
	weekYear := r.GetWeekYear(date)
	startOfWeekYear := r.weekYearDaysSinceEpoch(date.Calendar(), weekYear)
	zeroBasedDayOfWeekYear := date.DaysSinceEpoch() - startOfWeekYear
	return int(zeroBasedDayOfWeekYear/7) + 1
}

func (r SimpleRule) GetWeeksInWeekYear(weekYear int, cal calendar.System) (int, error) {
	if err := r.validateWeekYear(weekYear, cal); err != nil {
		return 0, err
	}
	return r.weeksInWeekYear(weekYear, cal), nil
}

func (r SimpleRule) GetWeekYear(date calendar.Date) int {
	cal := date.Calendar()
	calendarYear := date.Year()
	days := date.DaysSinceEpoch()

	startOfWeekYear := r.weekYearDaysSinceEpoch(cal, calendarYear)
	if days < startOfWeekYear {
		return calendarYear - 1
	}
	if r.irregularWeeks {
		return calendarYear
	}
	startOfNextWeekYear := startOfWeekYear + int64(r.weeksInWeekYear(calendarYear, cal))*7
	if days < startOfNextWeekYear {
		return calendarYear
	}
	return calendarYear + 1
}

// weeksInWeekYear expects weekYear to be validated already.
func (r SimpleRule) weeksInWeekYear(weekYear int, cal calendar.System) int {
	startOfWeekYear := r.weekYearDaysSinceEpoch(cal, weekYear)
	startOfCalendarYear := cal.StartOfYearInDays(weekYear)
	// Positive when week 1 starts in December of the previous calendar year.
	extraDaysAtStart := startOfCalendarYear - startOfWeekYear
	// Irregular rules end the week-year with the calendar year, so any partial week counts.
	// Regular rules keep up to minDays-1 days of the next calendar year.
	extraDaysAtEnd := int64(6)
	if !r.irregularWeeks {
		extraDaysAtEnd = int64(r.minDaysInFirstWeek - 1)
	}
	daysInWeekYear := int64(cal.DaysInYear(weekYear)) + extraDaysAtStart + extraDaysAtEnd
	return int(daysInWeekYear / 7)
}

// weekYearDaysSinceEpoch returns the day count of the first day of week 1 of weekYear.
// The result falls on firstDayOfWeek, at most 6 days before or 7 days after January 1st.
func (r SimpleRule) weekYearDaysSinceEpoch(cal calendar.System, weekYear int) int64 {
	startOfCalendarYear := cal.StartOfYearInDays(weekYear)
	daysIntoWeek := r.daysIntoWeek(calendar.DayOfWeekFromDays(startOfCalendarYear))
	startOfWeekContainingJan1 := startOfCalendarYear - daysIntoWeek
	if 7-daysIntoWeek >= int64(r.minDaysInFirstWeek) {
		return startOfWeekContainingJan1
	}
	return startOfWeekContainingJan1 + 7
}

// daysIntoWeek returns how many days after firstDayOfWeek the given day falls, in [0, 6].
func (r SimpleRule) daysIntoWeek(dayOfWeek calendar.IsoDayOfWeek) int64 {
	return int64((int(dayOfWeek) - int(r.firstDayOfWeek) + 7) % 7)
}

// validateWeekYear checks that at least one day of weekYear lies within cal's range.
func (r SimpleRule) validateWeekYear(weekYear int, cal calendar.System) error {
	if weekYear > cal.MinYear() && weekYear < cal.MaxYear() {
		return nil
	}
	// Week-year MinYear starting after January 1st leaves the first days of the calendar
	// in week-year MinYear-1.
	minWeekYear := cal.MinYear()
	if r.weekYearDaysSinceEpoch(cal, cal.MinYear()) > cal.MinDays() {
		minWeekYear--
	}
	// Week-year MaxYear+1 exists when it starts on or before the calendar's last day.
	// Irregular week-years never extend past their calendar year.
	maxWeekYear := cal.MaxYear()
	if !r.irregularWeeks && r.weekYearDaysSinceEpoch(cal, cal.MaxYear()+1) <= cal.MaxDays() {
		maxWeekYear++
	}
	if weekYear < minWeekYear || weekYear > maxWeekYear {
		return fmt.Errorf("%w: weekYear %d not in [%d, %d] for %s calendar",
			ErrOutOfRange, weekYear, minWeekYear, maxWeekYear, cal.ID())
	}
	return nil
}
