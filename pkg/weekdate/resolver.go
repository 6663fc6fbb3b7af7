package weekdate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/klokku/weekcal/internal/config"
	"github.com/klokku/weekcal/internal/event_bus"
	"github.com/klokku/weekcal/pkg/calendar"
	"github.com/klokku/weekcal/pkg/profile"
	"github.com/klokku/weekcal/pkg/weekyear"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// RuleSelection is the rule and calendar system a request is answered with.
type RuleSelection struct {
	Rule     weekyear.SimpleRule
	Calendar calendar.System
	// Profile is the name of the stored profile the selection came from, if any.
	Profile string
}

// RuleQuery holds the raw rule parameters of a request. Empty fields are unset.
type RuleQuery struct {
	Profile   string
	Legacy    string
	MinDays   string
	FirstDay  string
	Irregular string
	Calendar  string
}

func (q RuleQuery) explicitRule() bool {
	return q.MinDays != "" || q.FirstDay != "" || q.Irregular != ""
}

type ProfileFinder interface {
	Find(ctx context.Context, ref string) (profile.Profile, error)
}

// RuleResolver turns request parameters into a RuleSelection. Profile lookups are cached
// until a profile change event arrives.
type RuleResolver struct {
	defaults RuleSelection
	profiles ProfileFinder

	mu    sync.RWMutex
	cache map[string]RuleSelection
	// generation counts invalidations. A lookup that started before one must not be cached.
	generation uint64
}

func NewRuleResolver(defaults RuleSelection, profiles ProfileFinder, eventBus *event_bus.EventBus) *RuleResolver {
	r := &RuleResolver{
		defaults: defaults,
		profiles: profiles,
		cache:    make(map[string]RuleSelection),
	}
	if eventBus != nil {
		invalidate := func(e event_bus.EventT[event_bus.ProfileChanged]) error {
			r.invalidate(e.Data)
			return nil
		}
		event_bus.SubscribeTyped(eventBus, event_bus.ProfileUpdatedEvent, invalidate)
		event_bus.SubscribeTyped(eventBus, event_bus.ProfileDeletedEvent, invalidate)
	}
	return r
}

// DefaultSelection builds the selection used when a request names no rule, from configuration.
func DefaultSelection(cfg config.Rule) (RuleSelection, error) {
	firstDay, err := calendar.ParseIsoDayOfWeek(cfg.FirstDayOfWeek)
	if err != nil {
		return RuleSelection{}, fmt.Errorf("%w: %w", weekyear.ErrInvalidConfiguration, err)
	}
	rule, err := weekyear.New(cfg.MinDaysInFirstWeek, firstDay, cfg.Irregular)
	if err != nil {
		return RuleSelection{}, err
	}
	cal, err := calendar.ForID(cfg.Calendar)
	if err != nil {
		return RuleSelection{}, fmt.Errorf("%w: %w", weekyear.ErrInvalidConfiguration, err)
	}
	return RuleSelection{Rule: rule, Calendar: cal}, nil
}

// Defaults returns the configured selection.
func (r *RuleResolver) Defaults() RuleSelection {
	return r.defaults
}

// Resolve picks the selection for q. A profile wins over a legacy rule, which wins over
// explicit parameters; parameters that are not given fall back to the configured default.
// The calendar parameter overrides the calendar of whatever was selected.
func (r *RuleResolver) Resolve(ctx context.Context, q RuleQuery) (RuleSelection, error) {
	var (
		selection RuleSelection
		err       error
	)
	switch {
	case q.Profile != "":
		selection, err = r.fromProfile(ctx, q.Profile)
	case q.Legacy != "":
		selection, err = r.fromLegacy(q)
	case q.explicitRule():
		selection, err = r.fromParameters(q)
	default:
		selection = r.defaults
	}
	if err != nil {
		return RuleSelection{}, err
	}

	if q.Calendar != "" {
		cal, err := calendar.ForID(q.Calendar)
		if err != nil {
			return RuleSelection{}, fmt.Errorf("%w: calendar: %w", ErrInvalidParameter, err)
		}
		selection.Calendar = cal
	}
	return selection, nil
}

func (r *RuleResolver) fromProfile(ctx context.Context, ref string) (RuleSelection, error) {
	r.mu.RLock()
	cached, ok := r.cache[ref]
	generation := r.generation
	r.mu.RUnlock()
	if ok {
		log.Tracef("Rule for profile %s served from cache", ref)
		return cached, nil
	}
	if r.profiles == nil {
		return RuleSelection{}, profile.ErrProfileNotFound
	}

	p, err := r.profiles.Find(ctx, ref)
	if err != nil {
		return RuleSelection{}, err
	}
	rule, err := p.Rule()
	if err != nil {
		return RuleSelection{}, err
	}
	cal, err := p.CalendarSystem()
	if err != nil {
		return RuleSelection{}, err
	}
	selection := RuleSelection{Rule: rule, Calendar: cal, Profile: p.Name}

	r.mu.Lock()
	if r.generation == generation {
		r.cache[ref] = selection
	} else {
		log.Debugf("Profile %s changed during lookup, not caching its rule", ref)
	}
	r.mu.Unlock()
	return selection, nil
}

func (r *RuleResolver) fromLegacy(q RuleQuery) (RuleSelection, error) {
	kind, err := weekyear.ParseCalendarWeekRule(q.Legacy)
	if err != nil {
		return RuleSelection{}, err
	}
	firstDay := r.defaults.Rule.FirstDayOfWeek()
	if q.FirstDay != "" {
		firstDay, err = calendar.ParseIsoDayOfWeek(q.FirstDay)
		if err != nil {
			return RuleSelection{}, fmt.Errorf("%w: firstDay: %w", ErrInvalidParameter, err)
		}
	}
	rule, err := weekyear.FromCalendarWeekRule(kind, firstDay.Weekday())
	if err != nil {
		return RuleSelection{}, err
	}
	return RuleSelection{Rule: rule, Calendar: r.defaults.Calendar}, nil
}

func (r *RuleResolver) fromParameters(q RuleQuery) (RuleSelection, error) {
	minDays := r.defaults.Rule.MinDaysInFirstWeek()
	firstDay := r.defaults.Rule.FirstDayOfWeek()
	irregular := r.defaults.Rule.IrregularWeeks()

	var err error
	if q.MinDays != "" {
		minDays, err = strconv.Atoi(strings.TrimSpace(q.MinDays))
		if err != nil {
			return RuleSelection{}, fmt.Errorf("%w: minDays: %w", ErrInvalidParameter, err)
		}
	}
	if q.FirstDay != "" {
		firstDay, err = calendar.ParseIsoDayOfWeek(q.FirstDay)
		if err != nil {
			return RuleSelection{}, fmt.Errorf("%w: firstDay: %w", ErrInvalidParameter, err)
		}
	}
	if q.Irregular != "" {
		irregular, err = strconv.ParseBool(strings.TrimSpace(q.Irregular))
		if err != nil {
			return RuleSelection{}, fmt.Errorf("%w: irregular: %w", ErrInvalidParameter, err)
		}
	}

	rule, err := weekyear.New(minDays, firstDay, irregular)
	if err != nil {
		return RuleSelection{}, err
	}
	return RuleSelection{Rule: rule, Calendar: r.defaults.Calendar}, nil
}

// invalidate drops every cached selection. Entries are keyed by whatever reference the
// request used, uid or name, and a rename leaves no trace of the old name in the event.
func (r *RuleResolver) invalidate(changed event_bus.ProfileChanged) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.Debugf("Profile %s (%s) changed, dropping %d cached rules", changed.Name, changed.Uid, len(r.cache))
	r.cache = make(map[string]RuleSelection)
	r.generation++
}
