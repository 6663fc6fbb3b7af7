package weekdate

import (
	"testing"
	"time"

	"github.com/klokku/weekcal/pkg/calendar"
	"github.com/klokku/weekcal/pkg/weekyear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvCalendarRendererImpl_RenderCalendar(t *testing.T) {
	rule, err := weekyear.FromCalendarWeekRule(weekyear.FirstDay, time.Sunday)
	require.NoError(t, err)
	sel := RuleSelection{Rule: rule, Calendar: calendar.Iso()}
	weeks, err := weekyear.Weeks(rule, 2011, calendar.Iso())
	require.NoError(t, err)

	got, err := NewCsvCalendarRenderer().RenderCalendar(sel, weeks[:2])

	require.NoError(t, err)
	want := "Week-year,Week,Week date,Start,End,Days\n" +
		"2011,1,2011-W01-6,2011-01-01,2011-01-01,1\n" +
		"2011,2,2011-W02-7,2011-01-02,2011-01-08,7\n"
	assert.Equal(t, want, got)
}

func TestCsvCalendarRendererImpl_RenderCalendar_Empty(t *testing.T) {
	got, err := NewCsvCalendarRenderer().RenderCalendar(isoSelection(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Week-year,Week,Week date,Start,End,Days\n", got)
}
