package weekdate

import (
	"time"

	"github.com/klokku/weekcal/internal/utils"
	"github.com/klokku/weekcal/pkg/calendar"
	"github.com/klokku/weekcal/pkg/weekyear"
	log "github.com/sirupsen/logrus"
)

// Conversion is a date together with its week date under a selection.
type Conversion struct {
	Date            calendar.Date
	WeekDate        weekyear.WeekDate
	WeeksInWeekYear int
}

type Service interface {
	WeekDateOf(sel RuleSelection, date calendar.Date) (Conversion, error)
	DateOf(sel RuleSelection, wd weekyear.WeekDate) (Conversion, error)
	WeeksInWeekYear(sel RuleSelection, weekYear int) (int, error)
	WeekCalendar(sel RuleSelection, weekYear int) ([]weekyear.Week, error)
	Today(sel RuleSelection) (Conversion, error)
}

type ServiceImpl struct {
	clock    utils.Clock
	location *time.Location
}

// NewService creates the conversion service. Today is taken from clock in location.
func NewService(clock utils.Clock, location *time.Location) *ServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &ServiceImpl{clock: clock, location: location}
}

func (s *ServiceImpl) WeekDateOf(sel RuleSelection, date calendar.Date) (Conversion, error) {
	date, err := date.WithCalendar(sel.Calendar)
	if err != nil {
		return Conversion{}, err
	}
	wd := weekyear.WeekDateOf(sel.Rule, date)
	weeks, err := sel.Rule.GetWeeksInWeekYear(wd.WeekYear, sel.Calendar)
	if err != nil {
		return Conversion{}, err
	}
	log.Tracef("%s is %s under %s", date, wd, sel.Rule)
	return Conversion{Date: date, WeekDate: wd, WeeksInWeekYear: weeks}, nil
}

func (s *ServiceImpl) DateOf(sel RuleSelection, wd weekyear.WeekDate) (Conversion, error) {
	date, err := weekyear.DateOf(sel.Rule, wd, sel.Calendar)
	if err != nil {
		return Conversion{}, err
	}
	weeks, err := sel.Rule.GetWeeksInWeekYear(wd.WeekYear, sel.Calendar)
	if err != nil {
		return Conversion{}, err
	}
	log.Tracef("%s is %s under %s", wd, date, sel.Rule)
	return Conversion{Date: date, WeekDate: wd, WeeksInWeekYear: weeks}, nil
}

func (s *ServiceImpl) WeeksInWeekYear(sel RuleSelection, weekYear int) (int, error) {
	return sel.Rule.GetWeeksInWeekYear(weekYear, sel.Calendar)
}

func (s *ServiceImpl) WeekCalendar(sel RuleSelection, weekYear int) ([]weekyear.Week, error) {
	return weekyear.Weeks(sel.Rule, weekYear, sel.Calendar)
}

// Today converts the current date of the service's clock and location.
func (s *ServiceImpl) Today(sel RuleSelection) (Conversion, error) {
	today, err := utils.Today(s.clock, s.location)
	if err != nil {
		return Conversion{}, err
	}
	return s.WeekDateOf(sel, today)
}
