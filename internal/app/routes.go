package app

import (
	"github.com/gorilla/mux"
	"github.com/klokku/weekcal/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Week dates
	r.HandleFunc("/api/weekdate/current", deps.WeekDateHandler.GetCurrentWeekDate).Methods("GET")
	r.HandleFunc("/api/weekdate", deps.WeekDateHandler.GetWeekDate).Methods("GET")
	r.HandleFunc("/api/date", deps.WeekDateHandler.GetDate).Methods("GET")

	// Week-years
	r.HandleFunc("/api/weekyear/{weekYear}", deps.WeekDateHandler.GetWeekYear).Methods("GET")
	r.HandleFunc("/api/weekyear/{weekYear}/weeks", deps.WeekDateHandler.GetWeekCalendar).Methods("GET")

	// Profiles
	r.HandleFunc("/api/profile", deps.ProfileHandler.ListProfiles).Methods("GET")
	r.HandleFunc("/api/profile", deps.ProfileHandler.CreateProfile).Methods("POST")
	r.HandleFunc("/api/profile/{uid}", deps.ProfileHandler.GetProfile).Methods("GET")
	r.HandleFunc("/api/profile/{uid}", deps.ProfileHandler.UpdateProfile).Methods("PUT")
	r.HandleFunc("/api/profile/{uid}", deps.ProfileHandler.DeleteProfile).Methods("DELETE")
}
