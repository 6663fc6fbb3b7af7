package weekdate

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/klokku/weekcal/pkg/weekyear"
	log "github.com/sirupsen/logrus"
)

type CalendarRenderer interface {
	RenderCalendar(sel RuleSelection, weeks []weekyear.Week) (string, error)
}

// CsvCalendarRendererImpl writes a week-year calendar as CSV, one row per week.
type CsvCalendarRendererImpl struct {
}

func NewCsvCalendarRenderer() *CsvCalendarRendererImpl {
	return &CsvCalendarRendererImpl{}
}

var csvHeader = []string{"Week-year", "Week", "Week date", "Start", "End", "Days"}

func (t *CsvCalendarRendererImpl) RenderCalendar(sel RuleSelection, weeks []weekyear.Week) (string, error) {
	data := make([][]string, 0, len(weeks)+1)
	data = append(data, csvHeader)
	for _, week := range weeks {
		firstDay := weekyear.WeekDate{WeekYear: week.WeekYear, Week: week.Week, DayOfWeek: week.Start.DayOfWeek()}
		data = append(data, []string{
			strconv.Itoa(week.WeekYear),
			strconv.Itoa(week.Week),
			firstDay.String(),
			week.Start.String(),
			week.End.String(),
			strconv.Itoa(week.Days),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing calendar %s to csv: %v", sel.Rule, err)
		return "", err
	}
	return b.String(), nil
}
