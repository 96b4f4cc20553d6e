package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/hero-builds/internal/domain"
	"github.com/dom/hero-builds/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type HeroHandler struct {
	catalogService *service.CatalogService
}

func NewHeroHandler(catalogService *service.CatalogService) *HeroHandler {
	return &HeroHandler{catalogService: catalogService}
}

type HeroesResponse struct {
	Heroes []*domain.Hero `json:"heroes"`
}

type BuildResponse struct {
	*domain.Build
	Score float64 `json:"score"`
}

type BuildsResponse struct {
	HeroID string          `json:"heroId"`
	Builds []BuildResponse `json:"builds"`
}

func (h *HeroHandler) List(w http.ResponseWriter, r *http.Request) {
	heroes, err := h.catalogService.ListHeroes(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("[heroes.List] failed to list heroes")
		http.Error(w, "Failed to get heroes", http.StatusInternalServerError)
		return
	}

	if heroes == nil {
		heroes = []*domain.Hero{}
	}
	writeJSON(w, HeroesResponse{Heroes: heroes})
}

func (h *HeroHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hero, err := h.catalogService.GetHero(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrHeroNotFound) {
			http.Error(w, "Hero not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("hero_id", id).Msg("[heroes.Get] failed to get hero")
		http.Error(w, "Failed to get hero", http.StatusInternalServerError)
		return
	}

	writeJSON(w, hero)
}

func (h *HeroHandler) ListBuilds(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hero, ok := h.hero(w, r, id)
	if !ok {
		return
	}

	builds, err := h.catalogService.ListBuilds(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("hero_id", id).Msg("[heroes.ListBuilds] failed to list builds")
		http.Error(w, "Failed to get builds", http.StatusInternalServerError)
		return
	}

	resp := BuildsResponse{HeroID: id, Builds: make([]BuildResponse, len(builds))}
	for i, b := range builds {
		resp.Builds[i] = BuildResponse{Build: b, Score: domain.ScoreBuild(hero, b)}
	}
	writeJSON(w, resp)
}

func (h *HeroHandler) GetBuild(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	mood := domain.Mood(chi.URLParam(r, "mood"))

	if !mood.IsValid() {
		http.Error(w, "Invalid mood", http.StatusBadRequest)
		return
	}

	hero, ok := h.hero(w, r, id)
	if !ok {
		return
	}

	build, err := h.catalogService.GetBuild(r.Context(), id, mood)
	if err != nil {
		if errors.Is(err, domain.ErrBuildNotFound) {
			http.Error(w, "Build not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("hero_id", id).Str("mood", string(mood)).Msg("[heroes.GetBuild] failed to get build")
		http.Error(w, "Failed to get build", http.StatusInternalServerError)
		return
	}

	writeJSON(w, BuildResponse{Build: build, Score: domain.ScoreBuild(hero, build)})
}

// hero loads the hero for a builds route, writing the error response itself.
func (h *HeroHandler) hero(w http.ResponseWriter, r *http.Request, id string) (*domain.Hero, bool) {
	hero, err := h.catalogService.GetHero(r.Context(), id)
	if err == nil {
		return hero, true
	}
	if errors.Is(err, domain.ErrHeroNotFound) {
		http.Error(w, "Hero not found", http.StatusNotFound)
		return nil, false
	}
	log.Error().Err(err).Str("hero_id", id).Msg("[heroes] failed to get hero")
	http.Error(w, "Failed to get hero", http.StatusInternalServerError)
	return nil, false
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
