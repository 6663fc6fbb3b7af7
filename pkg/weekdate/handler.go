package weekdate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/klokku/weekcal/internal/rest"
	"github.com/klokku/weekcal/pkg/calendar"
	"github.com/klokku/weekcal/pkg/profile"
	"github.com/klokku/weekcal/pkg/weekyear"
)

type RuleDTO struct {
	MinDaysInFirstWeek int    `json:"minDaysInFirstWeek"`
	FirstDayOfWeek     string `json:"firstDayOfWeek"`
	IrregularWeeks     bool   `json:"irregularWeeks"`
	Calendar           string `json:"calendar"`
	Profile            string `json:"profile,omitempty"`
}

type ConversionDTO struct {
	Date            string  `json:"date"`
	WeekDate        string  `json:"weekDate"`
	WeekYear        int     `json:"weekYear"`
	Week            int     `json:"week"`
	DayOfWeek       int     `json:"dayOfWeek"`
	DayName         string  `json:"dayName"`
	WeeksInWeekYear int     `json:"weeksInWeekYear"`
	Rule            RuleDTO `json:"rule"`
}

type WeekYearDTO struct {
	WeekYear int     `json:"weekYear"`
	Weeks    int     `json:"weeks"`
	Rule     RuleDTO `json:"rule"`
}

type WeekDTO struct {
	Week  int    `json:"week"`
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

type WeekCalendarDTO struct {
	WeekYear int       `json:"weekYear"`
	Rule     RuleDTO   `json:"rule"`
	Weeks    []WeekDTO `json:"weeks"`
}

type Handler struct {
	service  Service
	resolver *RuleResolver
	renderer CalendarRenderer
}

func NewHandler(service Service, resolver *RuleResolver, renderer CalendarRenderer) *Handler {
	return &Handler{service: service, resolver: resolver, renderer: renderer}
}

// GetWeekDate converts the date query parameter to its week date.
func (h *Handler) GetWeekDate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	sel, ok := h.resolve(w, r)
	if !ok {
		return
	}

	dateString := r.URL.Query().Get("date")
	date, err := calendar.ParseDate(sel.Calendar, dateString)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	conversion, err := h.service.WeekDateOf(sel, date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, conversionToDTO(sel, conversion))
}

// GetCurrentWeekDate converts today's date.
func (h *Handler) GetCurrentWeekDate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	sel, ok := h.resolve(w, r)
	if !ok {
		return
	}

	conversion, err := h.service.Today(sel)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, conversionToDTO(sel, conversion))
}

// GetDate converts a week date to a calendar date. The week date is either given in ISO
// notation as weekDate=2025-W03-1 or as the separate weekYear, week and day parameters.
func (h *Handler) GetDate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	sel, ok := h.resolve(w, r)
	if !ok {
		return
	}

	wd, err := weekDateFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	conversion, err := h.service.DateOf(sel, wd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, conversionToDTO(sel, conversion))
}

// GetWeekYear returns the number of weeks in a week-year.
func (h *Handler) GetWeekYear(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	sel, ok := h.resolve(w, r)
	if !ok {
		return
	}
	weekYear, err := weekYearFromPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	weeks, err := h.service.WeeksInWeekYear(sel, weekYear)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, WeekYearDTO{WeekYear: weekYear, Weeks: weeks, Rule: ruleToDTO(sel)})
}

// GetWeekCalendar lists the weeks of a week-year with their first and last dates, as JSON
// or, with format=csv or an Accept: text/csv header, as CSV.
func (h *Handler) GetWeekCalendar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	sel, ok := h.resolve(w, r)
	if !ok {
		return
	}
	weekYear, err := weekYearFromPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	weeks, err := h.service.WeekCalendar(sel, weekYear)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" || r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderCalendar(sel, weeks)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"weeks-%d.csv\"", weekYear))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			rest.Logger(r.Context()).Errorf("failed to write csv: %v", err)
		}
		return
	}

	dto := WeekCalendarDTO{WeekYear: weekYear, Rule: ruleToDTO(sel), Weeks: make([]WeekDTO, 0, len(weeks))}
	for _, week := range weeks {
		dto.Weeks = append(dto.Weeks, WeekDTO{
			Week:  week.Week,
			Start: week.Start.String(),
			End:   week.End.String(),
			Days:  week.Days,
		})
	}
	h.writeJSON(w, r, dto)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (RuleSelection, bool) {
	query := r.URL.Query()
	sel, err := h.resolver.Resolve(r.Context(), RuleQuery{
		Profile:   query.Get("profile"),
		Legacy:    query.Get("legacy"),
		MinDays:   query.Get("minDays"),
		FirstDay:  query.Get("firstDay"),
		Irregular: query.Get("irregular"),
		Calendar:  query.Get("calendar"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return RuleSelection{}, false
	}
	return sel, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, body any) {
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		rest.Logger(r.Context()).Errorf("failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, weekyear.ErrInvalidConfiguration):
		rest.WriteError(w, http.StatusBadRequest, "invalid week rule", err.Error())
	case errors.Is(err, weekyear.ErrOutOfRange), errors.Is(err, calendar.ErrOutOfRange):
		rest.WriteError(w, http.StatusBadRequest, "value out of range", err.Error())
	case errors.Is(err, weekyear.ErrInvalidCombination):
		rest.WriteError(w, http.StatusBadRequest, "week date does not exist", err.Error())
	case errors.Is(err, calendar.ErrInvalidDate), errors.Is(err, calendar.ErrUnknownCalendar),
		errors.Is(err, ErrInvalidParameter):
		rest.WriteError(w, http.StatusBadRequest, "invalid parameter", err.Error())
	case errors.Is(err, profile.ErrProfileNotFound):
		rest.WriteError(w, http.StatusNotFound, "profile not found", err.Error())
	default:
		rest.Logger(r.Context()).Errorf("week date request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "internal error", "")
	}
}

func weekYearFromPath(r *http.Request) (int, error) {
	weekYear, err := strconv.Atoi(mux.Vars(r)["weekYear"])
	if err != nil {
		return 0, fmt.Errorf("%w: weekYear: %w", ErrInvalidParameter, err)
	}
	return weekYear, nil
}

func weekDateFromQuery(r *http.Request) (weekyear.WeekDate, error) {
	query := r.URL.Query()
	if s := query.Get("weekDate"); s != "" {
		wd, err := weekyear.ParseWeekDate(s)
		if err != nil {
			return weekyear.WeekDate{}, fmt.Errorf("%w: weekDate: %w", ErrInvalidParameter, err)
		}
		return wd, nil
	}

	weekYear, err := strconv.Atoi(query.Get("weekYear"))
	if err != nil {
		return weekyear.WeekDate{}, fmt.Errorf("%w: weekYear: %w", ErrInvalidParameter, err)
	}
	week, err := strconv.Atoi(query.Get("week"))
	if err != nil {
		return weekyear.WeekDate{}, fmt.Errorf("%w: week: %w", ErrInvalidParameter, err)
	}
	day, err := calendar.ParseIsoDayOfWeek(query.Get("day"))
	if err != nil {
		return weekyear.WeekDate{}, fmt.Errorf("%w: day: %w", ErrInvalidParameter, err)
	}
	return weekyear.WeekDate{WeekYear: weekYear, Week: week, DayOfWeek: day}, nil
}

func ruleToDTO(sel RuleSelection) RuleDTO {
	return RuleDTO{
		MinDaysInFirstWeek: sel.Rule.MinDaysInFirstWeek(),
		FirstDayOfWeek:     sel.Rule.FirstDayOfWeek().String(),
		IrregularWeeks:     sel.Rule.IrregularWeeks(),
		Calendar:           sel.Calendar.ID(),
		Profile:            sel.Profile,
	}
}

func conversionToDTO(sel RuleSelection, c Conversion) ConversionDTO {
	return ConversionDTO{
		Date:            c.Date.String(),
		WeekDate:        c.WeekDate.String(),
		WeekYear:        c.WeekDate.WeekYear,
		Week:            c.WeekDate.Week,
		DayOfWeek:       int(c.WeekDate.DayOfWeek),
		DayName:         c.WeekDate.DayOfWeek.String(),
		WeeksInWeekYear: c.WeeksInWeekYear,
		Rule:            ruleToDTO(sel),
	}
}
