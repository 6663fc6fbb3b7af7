package app

import (
	"time"

	"github.com/klokku/weekcal/internal/event_bus"
	"github.com/klokku/weekcal/internal/utils"
	"github.com/klokku/weekcal/pkg/profile"
	"github.com/klokku/weekcal/pkg/weekdate"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	ProfileRepo    profile.Repository
	ProfileService *profile.ServiceImpl
	ProfileHandler *profile.Handler

	RuleResolver        *weekdate.RuleResolver
	WeekDateService     *weekdate.ServiceImpl
	CsvCalendarRenderer *weekdate.CsvCalendarRendererImpl
	WeekDateHandler     *weekdate.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(profileRepo profile.Repository, defaults weekdate.RuleSelection, location *time.Location) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.ProfileRepo = profileRepo
	deps.ProfileService = profile.NewService(deps.ProfileRepo, deps.EventBus)
	deps.ProfileHandler = profile.NewHandler(deps.ProfileService)

	deps.RuleResolver = weekdate.NewRuleResolver(defaults, deps.ProfileService, deps.EventBus)
	deps.WeekDateService = weekdate.NewService(deps.Clock, location)
	deps.CsvCalendarRenderer = weekdate.NewCsvCalendarRenderer()
	deps.WeekDateHandler = weekdate.NewHandler(deps.WeekDateService, deps.RuleResolver, deps.CsvCalendarRenderer)

	return deps
}
