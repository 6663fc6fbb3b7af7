package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/weekcal/internal/rest"
	"github.com/klokku/weekcal/pkg/calendar"
)

type ProfileDTO struct {
	Uid                string    `json:"uid,omitempty"`
	Name               string    `json:"name"`
	MinDaysInFirstWeek int       `json:"minDaysInFirstWeek"`
	FirstDayOfWeek     string    `json:"firstDayOfWeek"`
	IrregularWeeks     bool      `json:"irregularWeeks"`
	Calendar           string    `json:"calendar,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitzero"`
	UpdatedAt          time.Time `json:"updatedAt,omitzero"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListProfiles returns every stored profile ordered by name.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	logger := rest.Logger(r.Context())
	logger.Debug("Listing profiles")
	w.Header().Set("Content-Type", "application/json")

	profiles, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dtos := make([]ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		dtos = append(dtos, ProfileToDTO(p))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		logger.Errorf("failed to encode profiles: %v", err)
	}
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	p, err := h.service.Get(r.Context(), uid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeProfile(w, r, http.StatusOK, p)
}

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	rest.Logger(r.Context()).Debug("Creating profile")
	w.Header().Set("Content-Type", "application/json")

	p, err := decodeProfile(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeProfile(w, r, http.StatusCreated, created)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	rest.Logger(r.Context()).Debug("Updating profile")
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	p, err := decodeProfile(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if p.Uid != "" && p.Uid != uid {
		rest.WriteError(w, http.StatusBadRequest, "profile uid in body does not match path", "")
		return
	}
	p.Uid = uid

	updated, err := h.service.Update(r.Context(), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeProfile(w, r, http.StatusOK, updated)
}

func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	rest.Logger(r.Context()).Debug("Deleting profile")
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeProfile(w http.ResponseWriter, r *http.Request, status int, p Profile) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ProfileToDTO(p)); err != nil {
		rest.Logger(r.Context()).Errorf("failed to encode profile: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		rest.WriteError(w, http.StatusNotFound, "profile not found", err.Error())
	case errors.Is(err, ErrProfileInvalid):
		rest.WriteError(w, http.StatusBadRequest, "invalid profile", err.Error())
	case errors.Is(err, ErrProfileNameTaken):
		rest.WriteError(w, http.StatusConflict, "profile name already taken", err.Error())
	default:
		rest.Logger(r.Context()).Errorf("profile request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "internal error", "")
	}
}

func decodeProfile(r *http.Request) (Profile, error) {
	var dto ProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return Profile{}, err
	}
	return DTOToProfile(dto)
}

func ProfileToDTO(p Profile) ProfileDTO {
	return ProfileDTO{
		Uid:                p.Uid,
		Name:               p.Name,
		MinDaysInFirstWeek: p.MinDaysInFirstWeek,
		FirstDayOfWeek:     p.FirstDayOfWeek.String(),
		IrregularWeeks:     p.IrregularWeeks,
		Calendar:           p.Calendar,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// DTOToProfile converts a request body. A missing first day of week defaults to Monday.
func DTOToProfile(dto ProfileDTO) (Profile, error) {
	firstDay := calendar.Monday
	if dto.FirstDayOfWeek != "" {
		day, err := calendar.ParseIsoDayOfWeek(dto.FirstDayOfWeek)
		if err != nil {
			return Profile{}, err
		}
		firstDay = day
	}
	return Profile{
		Uid:                dto.Uid,
		Name:               dto.Name,
		MinDaysInFirstWeek: dto.MinDaysInFirstWeek,
		FirstDayOfWeek:     firstDay,
		IrregularWeeks:     dto.IrregularWeeks,
		Calendar:           dto.Calendar,
	}, nil
}
