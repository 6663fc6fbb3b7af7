package calendar

const julianID = "julian"

const (
	julianMinYear = -9997
	julianMaxYear = 9998
	// Day count from Julian 0000-03-01 to 1970-01-01 (ISO), which is Julian 1969-12-19.
	julianEpochShift = 719470
	daysPer4Years    = 1461
)

type julian struct {
	minDays int64
	maxDays int64
}

var julianSystem = julian{
	minDays: julianDays(julianMinYear, 1, 1),
	maxDays: julianDays(julianMaxYear, 12, 31),
}

// Julian returns the proleptic Julian calendar.
func Julian() System {
	return julianSystem
}

func (j julian) ID() string     { return julianID }
func (j julian) MinYear() int   { return julianMinYear }
func (j julian) MaxYear() int   { return julianMaxYear }
func (j julian) MinDays() int64 { return j.minDays }
func (j julian) MaxDays() int64 { return j.maxDays }

func (j julian) StartOfYearInDays(year int) int64 {
	return julianDays(year, 1, 1)
}

func (j julian) DaysInYear(year int) int {
	if year%4 == 0 {
		return 366
	}
	return 365
}

func (j julian) DaysInMonth(year, month int) int {
	return daysInMonth(month, year%4 == 0)
}

func (j julian) DaysSinceEpoch(date Date) int64 {
	return julianDays(date.year, date.month, date.day)
}

func (j julian) DateFromDaysSinceEpoch(days int64) (Date, error) {
	if days < j.minDays || days > j.maxDays {
		return Date{}, rangeError(j, days)
	}
	z := days + julianEpochShift
	era := floorDiv(z, daysPer4Years)
	doe := z - era*daysPer4Years
	yoe := (doe - doe/1460) / 365
	doy := doe - 365*yoe
	month, day := monthDayFromMarchDay(doy)
	year := int(yoe + era*4)
	if month <= 2 {
		year++
	}
	return Date{calendar: j, year: year, month: month, day: day}, nil
}

func julianDays(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 4)
	yoe := y - era*4
	doe := yoe*365 + marchDayOfYear(month, day)
	return era*daysPer4Years + doe - julianEpochShift
}
