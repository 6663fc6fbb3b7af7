package weekyear

import (
	"fmt"
	"testing"
	"time"

	"github.com/klokku/weekcal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allRules(t *testing.T) []SimpleRule {
	t.Helper()
	var rules []SimpleRule
	for minDays := 1; minDays <= 7; minDays++ {
		for day := calendar.Monday; day <= calendar.Sunday; day++ {
			for _, irregular := range []bool{false, true} {
				rule, err := New(minDays, day, irregular)
				require.NoError(t, err)
				rules = append(rules, rule)
			}
		}
	}
	return rules
}

func isoDate(t *testing.T, year, month, day int) calendar.Date {
	t.Helper()
	date, err := calendar.NewDate(calendar.Iso(), year, month, day)
	require.NoError(t, err)
	return date
}

func TestIsoRuleConcreteDates(t *testing.T) {
	tests := []struct {
		name     string
		date     calendar.Date
		weekYear int
		week     int
	}{
		{"saturday january 1st belongs to previous week-year", isoDate(t, 2011, 1, 1), 2010, 52},
		{"monday december 31st belongs to next week-year", isoDate(t, 2012, 12, 31), 2013, 1},
		{"thursday january 1st starts week 1", isoDate(t, 2015, 1, 1), 2015, 1},
		{"week 53", isoDate(t, 2020, 12, 31), 2020, 53},
		{"sunday january 3rd still in week 53", isoDate(t, 2021, 1, 3), 2020, 53},
		{"mid year", isoDate(t, 2025, 1, 15), 2025, 3},
	}
	rule := Iso()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.weekYear, rule.GetWeekYear(tt.date))
			assert.Equal(t, tt.week, rule.GetWeekOfWeekYear(tt.date))
		})
	}
}

func TestIsoRuleGetLocalDate(t *testing.T) {
	date, err := Iso().GetLocalDate(2013, 1, calendar.Monday, calendar.Iso())

	require.NoError(t, err)
	assert.Equal(t, "2012-12-31", date.String())

	date, err = Iso().GetLocalDate(2010, 52, calendar.Saturday, calendar.Iso())

	require.NoError(t, err)
	assert.Equal(t, "2011-01-01", date.String())
}

func TestIsoRuleMatchesTimeISOWeek(t *testing.T) {
	rule := Iso()
	start := time.Date(1890, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := start; day.Year() < 2110; day = day.AddDate(0, 0, 1) {
		expectedYear, expectedWeek := day.ISOWeek()
		date, err := calendar.FromTime(day)
		require.NoError(t, err)
		require.Equal(t, expectedYear, rule.GetWeekYear(date), "week-year of %s", date)
		require.Equal(t, expectedWeek, rule.GetWeekOfWeekYear(date), "week of %s", date)
	}
}

func TestIsoRuleWeeksInWeekYear(t *testing.T) {
	cal := calendar.Iso()
	rule := Iso()
	for year := cal.MinYear(); year <= cal.MaxYear(); year++ {
		weeks, err := rule.GetWeeksInWeekYear(year, cal)
		require.NoError(t, err)
		require.Contains(t, []int{52, 53}, weeks, "week-year %d", year)
	}

	weeks, err := rule.GetWeeksInWeekYear(2020, cal)
	require.NoError(t, err)
	assert.Equal(t, 53, weeks)
	weeks, err = rule.GetWeeksInWeekYear(2021, cal)
	require.NoError(t, err)
	assert.Equal(t, 52, weeks)
}

func TestFirstDayRuleJanuaryFirstIsWeekOne(t *testing.T) {
	cal := calendar.Iso()
	rule, err := ForMinDaysInFirstWeek(1)
	require.NoError(t, err)

	for year := cal.MinYear(); year <= cal.MaxYear(); year++ {
		jan1, err := calendar.NewDate(cal, year, 1, 1)
		require.NoError(t, err)
		require.Equal(t, year, rule.GetWeekYear(jan1), "week-year of %s", jan1)
		require.Equal(t, 1, rule.GetWeekOfWeekYear(jan1), "week of %s", jan1)
	}
}

func TestRoundTripFromDates(t *testing.T) {
	for _, cal := range []calendar.System{calendar.Iso(), calendar.Julian()} {
		first := cal.StartOfYearInDays(1999)
		last := cal.StartOfYearInDays(2032) - 1
		for _, rule := range allRules(t) {
			t.Run(fmt.Sprintf("%s/%s", cal.ID(), rule), func(t *testing.T) {
				for days := first; days <= last; days++ {
					date, err := cal.DateFromDaysSinceEpoch(days)
					require.NoError(t, err)

					weekYear := rule.GetWeekYear(date)
					week := rule.GetWeekOfWeekYear(date)
					require.GreaterOrEqual(t, week, 1)
					if rule.IrregularWeeks() {
						require.Contains(t, []int{date.Year(), date.Year() - 1}, weekYear, "week-year of %s", date)
					}

					roundTrip, err := rule.GetLocalDate(weekYear, week, date.DayOfWeek(), cal)
					require.NoError(t, err, "date %s", date)
					require.Equal(t, date, roundTrip)
				}
			})
		}
	}
}

func TestRoundTripFromWeekDates(t *testing.T) {
	cal := calendar.Iso()
	years := []int{1, 1969, 1970, 2000, 2010, 2011, 2012, 2013, 2020, 2024, 2025, 2026}
	for _, rule := range allRules(t) {
		t.Run(rule.String(), func(t *testing.T) {
			for _, weekYear := range years {
				weeks, err := rule.GetWeeksInWeekYear(weekYear, cal)
				require.NoError(t, err)
				for week := 1; week <= weeks; week++ {
					for day := calendar.Monday; day <= calendar.Sunday; day++ {
						date, err := rule.GetLocalDate(weekYear, week, day, cal)
						if err != nil {
							require.True(t, rule.IrregularWeeks(), "regular rule rejected %d-W%02d-%d: %v", weekYear, week, day, err)
							require.ErrorIs(t, err, ErrInvalidCombination)
							continue
						}
						require.Equal(t, weekYear, rule.GetWeekYear(date), "week-year of %s", date)
						require.Equal(t, week, rule.GetWeekOfWeekYear(date), "week of %s", date)
						require.Equal(t, day, date.DayOfWeek())
					}
				}
			}
		})
	}
}

func TestRegularWeeksStartSevenDaysApart(t *testing.T) {
	cal := calendar.Iso()
	for _, rule := range allRules(t) {
		if rule.IrregularWeeks() {
			continue
		}
		for _, weekYear := range []int{2000, 2015, 2020, 2024} {
			weeks, err := rule.GetWeeksInWeekYear(weekYear, cal)
			require.NoError(t, err)
			previous, err := rule.GetLocalDate(weekYear, 1, rule.FirstDayOfWeek(), cal)
			require.NoError(t, err)
			for week := 2; week <= weeks; week++ {
				next, err := rule.GetLocalDate(weekYear, week, rule.FirstDayOfWeek(), cal)
				require.NoError(t, err)
				require.Equal(t, int64(7), next.DaysSinceEpoch()-previous.DaysSinceEpoch())
				previous = next
			}
			// The week after the last one is week 1 of the following week-year.
			following, err := rule.GetLocalDate(weekYear+1, 1, rule.FirstDayOfWeek(), cal)
			require.NoError(t, err)
			require.Equal(t, int64(7), following.DaysSinceEpoch()-previous.DaysSinceEpoch())
		}
	}
}

func TestGetLocalDateValidation(t *testing.T) {
	cal := calendar.Iso()
	rule := Iso()
	weeks, err := rule.GetWeeksInWeekYear(2021, cal)
	require.NoError(t, err)

	tests := []struct {
		name      string
		weekYear  int
		week      int
		dayOfWeek calendar.IsoDayOfWeek
	}{
		{"week zero", 2021, 0, calendar.Monday},
		{"week past the end of the week-year", 2021, weeks + 1, calendar.Monday},
		{"day of week zero", 2021, 1, 0},
		{"day of week eight", 2021, 1, 8},
		{"week-year far below range", cal.MinYear() - 2, 1, calendar.Monday},
		{"week-year far above range", cal.MaxYear() + 2, 1, calendar.Monday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rule.GetLocalDate(tt.weekYear, tt.week, tt.dayOfWeek, cal)
			require.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestLegacyRulesMatchCalendarWeekRule(t *testing.T) {
	firstDay, err := FromCalendarWeekRule(FirstDay, time.Sunday)
	require.NoError(t, err)
	firstFullWeek, err := FromCalendarWeekRule(FirstFullWeek, time.Sunday)
	require.NoError(t, err)
	firstFourDayWeek, err := FromCalendarWeekRule(FirstFourDayWeek, time.Monday)
	require.NoError(t, err)

	tests := []struct {
		name     string
		rule     SimpleRule
		date     calendar.Date
		weekYear int
		week     int
	}{
		{"first day: january 1st is week 1", firstDay, isoDate(t, 2011, 1, 1), 2011, 1},
		{"first day: december 31st is the last week", firstDay, isoDate(t, 2010, 12, 31), 2010, 53},
		{"first day: december 31st 2011", firstDay, isoDate(t, 2011, 12, 31), 2011, 53},
		{"first full week: january 1st in previous week-year", firstFullWeek, isoDate(t, 2011, 1, 1), 2010, 52},
		{"first full week: first sunday starts week 1", firstFullWeek, isoDate(t, 2011, 1, 2), 2011, 1},
		{"first four day week: never moves forward a year", firstFourDayWeek, isoDate(t, 2012, 12, 31), 2012, 53},
		{"first four day week: january 1st 2011", firstFourDayWeek, isoDate(t, 2011, 1, 1), 2010, 52},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.weekYear, tt.rule.GetWeekYear(tt.date))
			assert.Equal(t, tt.week, tt.rule.GetWeekOfWeekYear(tt.date))
		})
	}
}

func TestIrregularRuleRejectsTruncatedDays(t *testing.T) {
	cal := calendar.Iso()
	rule, err := FromCalendarWeekRule(FirstDay, time.Sunday)
	require.NoError(t, err)

	t.Run("december days of week 1", func(t *testing.T) {
		_, err := rule.GetLocalDate(2011, 1, calendar.Sunday, cal)
		require.ErrorIs(t, err, ErrInvalidCombination)

		date, err := rule.GetLocalDate(2011, 1, calendar.Saturday, cal)
		require.NoError(t, err)
		assert.Equal(t, "2011-01-01", date.String())
	})

	t.Run("january days of the last week", func(t *testing.T) {
		weeks, err := rule.GetWeeksInWeekYear(2010, cal)
		require.NoError(t, err)
		require.Equal(t, 53, weeks)

		_, err = rule.GetLocalDate(2010, 53, calendar.Saturday, cal)
		require.ErrorIs(t, err, ErrInvalidCombination)

		date, err := rule.GetLocalDate(2010, 53, calendar.Friday, cal)
		require.NoError(t, err)
		assert.Equal(t, "2010-12-31", date.String())
	})

	t.Run("first full week keeps january days in previous week-year", func(t *testing.T) {
		fullWeek, err := FromCalendarWeekRule(FirstFullWeek, time.Sunday)
		require.NoError(t, err)

		date, err := fullWeek.GetLocalDate(2010, 52, calendar.Saturday, cal)

		require.NoError(t, err)
		assert.Equal(t, "2011-01-01", date.String())
	})
}

func TestWeekYearRange(t *testing.T) {
	for _, cal := range []calendar.System{calendar.Iso(), calendar.Julian()} {
		for _, rule := range allRules(t) {
			t.Run(fmt.Sprintf("%s/%s", cal.ID(), rule), func(t *testing.T) {
				firstDay, err := cal.DateFromDaysSinceEpoch(cal.MinDays())
				require.NoError(t, err)
				lastDay, err := cal.DateFromDaysSinceEpoch(cal.MaxDays())
				require.NoError(t, err)

				_, err = rule.GetWeeksInWeekYear(rule.GetWeekYear(firstDay), cal)
				require.NoError(t, err)
				_, err = rule.GetWeeksInWeekYear(rule.GetWeekYear(lastDay), cal)
				require.NoError(t, err)

				_, err = rule.GetWeeksInWeekYear(cal.MinYear()-2, cal)
				require.ErrorIs(t, err, ErrOutOfRange)
				_, err = rule.GetWeeksInWeekYear(cal.MaxYear()+2, cal)
				require.ErrorIs(t, err, ErrOutOfRange)
				if rule.IrregularWeeks() {
					_, err = rule.GetWeeksInWeekYear(cal.MaxYear()+1, cal)
					require.ErrorIs(t, err, ErrOutOfRange)
				}

				for _, date := range []calendar.Date{firstDay, lastDay} {
					roundTrip, err := rule.GetLocalDate(rule.GetWeekYear(date), rule.GetWeekOfWeekYear(date), date.DayOfWeek(), cal)
					require.NoError(t, err)
					require.Equal(t, date, roundTrip)
				}
			})
		}
	}
}
