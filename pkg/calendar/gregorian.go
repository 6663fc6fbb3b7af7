package calendar

const isoID = "iso"

const (
	isoMinYear = -9998
	isoMaxYear = 9999
	// Day count from 0000-03-01 to 1970-01-01 in the proleptic Gregorian calendar.
	gregorianEpochShift = 719468
	daysPer400Years     = 146097
)

type gregorian struct {
	minDays int64
	maxDays int64
}

var isoSystem = newGregorian()

func newGregorian() gregorian {
	return gregorian{
		minDays: gregorianDays(isoMinYear, 1, 1),
		maxDays: gregorianDays(isoMaxYear, 12, 31),
	}
}

// Iso returns the proleptic Gregorian calendar used by ISO-8601.
func Iso() System {
	return isoSystem
}

func (g gregorian) ID() string     { return isoID }
func (g gregorian) MinYear() int   { return isoMinYear }
func (g gregorian) MaxYear() int   { return isoMaxYear }
func (g gregorian) MinDays() int64 { return g.minDays }
func (g gregorian) MaxDays() int64 { return g.maxDays }

func (g gregorian) StartOfYearInDays(year int) int64 {
	return gregorianDays(year, 1, 1)
}

func (g gregorian) DaysInYear(year int) int {
	if isGregorianLeap(year) {
		return 366
	}
	return 365
}

func (g gregorian) DaysInMonth(year, month int) int {
	return daysInMonth(month, isGregorianLeap(year))
}

func (g gregorian) DaysSinceEpoch(date Date) int64 {
	return gregorianDays(date.year, date.month, date.day)
}

func (g gregorian) DateFromDaysSinceEpoch(days int64) (Date, error) {
	if days < g.minDays || days > g.maxDays {
		return Date{}, rangeError(g, days)
	}
	z := days + gregorianEpochShift
	era := floorDiv(z, daysPer400Years)
	doe := z - era*daysPer400Years
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	month, day := monthDayFromMarchDay(doy)
	year := int(yoe + era*400)
	if month <= 2 {
		year++
	}
	return Date{calendar: g, year: year, month: month, day: day}, nil
}

func isGregorianLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func gregorianDays(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	doe := yoe*365 + yoe/4 - yoe/100 + marchDayOfYear(month, day)
	return era*daysPer400Years + doe - gregorianEpochShift
}
