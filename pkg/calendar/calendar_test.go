package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsoDaysSinceEpochMatchesTimePackage(t *testing.T) {
	cal := Iso()
	for days := int64(-800_000); days <= 800_000; days += 997 {
		expected := time.Unix(days*24*60*60, 0).UTC()

		date, err := cal.DateFromDaysSinceEpoch(days)

		require.NoError(t, err)
		assert.Equal(t, expected.Year(), date.Year(), "days %d", days)
		assert.Equal(t, int(expected.Month()), date.Month(), "days %d", days)
		assert.Equal(t, expected.Day(), date.Day(), "days %d", days)
		assert.Equal(t, days, date.DaysSinceEpoch())
		assert.Equal(t, expected.Weekday(), date.DayOfWeek().Weekday(), "days %d", days)
	}
}

func TestRoundTripAcrossWholeRange(t *testing.T) {
	for _, cal := range []System{Iso(), Julian()} {
		t.Run(cal.ID(), func(t *testing.T) {
			for days := cal.MinDays(); days <= cal.MaxDays(); days += 1009 {
				date, err := cal.DateFromDaysSinceEpoch(days)
				require.NoError(t, err)
				require.Equal(t, days, cal.DaysSinceEpoch(date), "date %s", date)
			}
			last, err := cal.DateFromDaysSinceEpoch(cal.MaxDays())
			require.NoError(t, err)
			assert.Equal(t, cal.MaxYear(), last.Year())
			assert.Equal(t, 12, last.Month())
			assert.Equal(t, 31, last.Day())

			first, err := cal.DateFromDaysSinceEpoch(cal.MinDays())
			require.NoError(t, err)
			assert.Equal(t, cal.MinYear(), first.Year())
			assert.Equal(t, 1, first.Month())
			assert.Equal(t, 1, first.Day())
		})
	}
}

func TestStartOfYearAndDaysInYearAgree(t *testing.T) {
	for _, cal := range []System{Iso(), Julian()} {
		t.Run(cal.ID(), func(t *testing.T) {
			for year := cal.MinYear() - 1; year <= cal.MaxYear(); year += 7 {
				next := cal.StartOfYearInDays(year + 1)
				assert.Equal(t, int64(cal.DaysInYear(year)), next-cal.StartOfYearInDays(year), "year %d", year)
			}
		})
	}
}

func TestDateFromDaysSinceEpochOutOfRange(t *testing.T) {
	cal := Iso()

	_, err := cal.DateFromDaysSinceEpoch(cal.MinDays() - 1)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = cal.DateFromDaysSinceEpoch(cal.MaxDays() + 1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestJulianCalendar(t *testing.T) {
	t.Run("epoch is 1969-12-19 julian", func(t *testing.T) {
		date, err := Julian().DateFromDaysSinceEpoch(0)
		require.NoError(t, err)
		assert.Equal(t, "1969-12-19", date.String())
	})

	t.Run("gregorian reform skips ten days", func(t *testing.T) {
		lastJulian, err := NewDate(Julian(), 1582, 10, 4)
		require.NoError(t, err)
		firstGregorian, err := NewDate(Iso(), 1582, 10, 15)
		require.NoError(t, err)

		assert.Equal(t, int64(1), firstGregorian.DaysSinceEpoch()-lastJulian.DaysSinceEpoch())
	})

	t.Run("every fourth year is a leap year", func(t *testing.T) {
		assert.Equal(t, 366, Julian().DaysInYear(1900))
		assert.Equal(t, 365, Iso().DaysInYear(1900))
		assert.Equal(t, 366, Julian().DaysInYear(-4))
		assert.Equal(t, 29, Julian().DaysInMonth(1700, 2))
	})
}

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		day     int
		wantErr error
	}{
		{"regular date", 2024, 3, 15, nil},
		{"leap day", 2024, 2, 29, nil},
		{"leap day in non leap year", 2023, 2, 29, ErrInvalidDate},
		{"month zero", 2024, 0, 1, ErrInvalidDate},
		{"month thirteen", 2024, 13, 1, ErrInvalidDate},
		{"day zero", 2024, 1, 0, ErrInvalidDate},
		{"april 31st", 2024, 4, 31, ErrInvalidDate},
		{"year above range", 10000, 1, 1, ErrOutOfRange},
		{"year below range", -9999, 1, 1, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDate(Iso(), tt.year, tt.month, tt.day)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseIsoDate(t *testing.T) {
	date, err := ParseIsoDate("2012-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2012, date.Year())
	assert.Equal(t, 12, date.Month())
	assert.Equal(t, 31, date.Day())
	assert.Equal(t, Monday, date.DayOfWeek())

	negative, err := ParseIsoDate("-0044-03-15")
	require.NoError(t, err)
	assert.Equal(t, -44, negative.Year())
	assert.Equal(t, "-0044-03-15", negative.String())

	invalidInputs := []string{
		"", "2012-12", "2012/12/31", "2012-+1-01", "2012-02-30", "abcd-01-01",
		"2025-1-5", "2025-01-5", "12-01-01", "10000-01-01", "-10000-01-01", "2025-001-01",
	}
	for _, invalid := range invalidInputs {
		_, err := ParseIsoDate(invalid)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", invalid)
	}
}

func TestFromTimeOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
	}{
		{"after max year", time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"before min year", time.Date(-9999, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromTime(tt.time)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}

	last, err := FromTime(time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "9999-12-31", last.String())
}

func TestDateHelpers(t *testing.T) {
	date, err := NewDate(Iso(), 2011, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, Saturday, date.DayOfWeek())
	assert.Equal(t, time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), date.Time())
	fromTime, err := FromTime(time.Date(2011, 1, 1, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, date.Equal(fromTime))

	next, err := date.PlusDays(365)
	require.NoError(t, err)
	assert.Equal(t, "2012-01-01", next.String())
	assert.True(t, date.Before(next))
	assert.True(t, next.After(date))

	julian, err := date.WithCalendar(Julian())
	require.NoError(t, err)
	assert.Equal(t, "2010-12-19", julian.String())
	assert.False(t, julian.Equal(date))
	assert.Equal(t, date.DaysSinceEpoch(), julian.DaysSinceEpoch())
}

func TestForID(t *testing.T) {
	cal, err := ForID(" ISO ")
	require.NoError(t, err)
	assert.Equal(t, "iso", cal.ID())

	cal, err = ForID("julian")
	require.NoError(t, err)
	assert.Equal(t, "julian", cal.ID())

	_, err = ForID("hebrew")
	require.ErrorIs(t, err, ErrUnknownCalendar)
}
