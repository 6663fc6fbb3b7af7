package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/klokku/weekcal/pkg/calendar"
	"github.com/klokku/weekcal/pkg/weekyear"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrProfileInvalid = errors.New("invalid profile")
var ErrProfileNameTaken = errors.New("profile name already taken")

// Profile is a named, stored week rule configuration that requests can refer to by uid or name.
type Profile struct {
	Id                 int
	Uid                string
	Name               string
	MinDaysInFirstWeek int
	FirstDayOfWeek     calendar.IsoDayOfWeek
	IrregularWeeks     bool
	// Calendar is the id of the calendar system, "iso" when empty.
	Calendar  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rule builds the week-year rule described by the profile.
func (p Profile) Rule() (weekyear.SimpleRule, error) {
	return weekyear.New(p.MinDaysInFirstWeek, p.FirstDayOfWeek, p.IrregularWeeks)
}

// CalendarSystem returns the calendar system the profile's week dates are computed in.
func (p Profile) CalendarSystem() (calendar.System, error) {
	return calendar.ForID(p.calendarId())
}

func (p Profile) calendarId() string {
	if p.Calendar == "" {
		return calendar.Iso().ID()
	}
	return p.Calendar
}

// validate normalises the profile and checks that it describes a usable rule.
func (p Profile) validate() (Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Profile{}, fmt.Errorf("%w: name is required", ErrProfileInvalid)
	}
	if _, err := p.Rule(); err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrProfileInvalid, err)
	}
	p.Calendar = strings.ToLower(p.calendarId())
	if _, err := p.CalendarSystem(); err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrProfileInvalid, err)
	}
	return p, nil
}
