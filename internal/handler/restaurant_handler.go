package handler

import (
	"net/http"
	"strconv"

	"foodpedia/internal/model"
	"foodpedia/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// RestaurantHandler handles restaurant-related HTTP requests.
type RestaurantHandler struct {
	service service.RestaurantService
	logger  zerolog.Logger
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(service service.RestaurantService, logger zerolog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		logger:  logger.With().Str("handler", "restaurant").Logger(),
	}
}

// List handles GET /api/restaurants requests.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := model.RestaurantFilter{
		Search:  query.Get("search"),
		Cuisine: query.Get("cuisine"),
		Sort:    query.Get("sort"),
	}

	var ok bool
	if filter.Limit, ok = h.intParam(w, r, "limit"); !ok {
		return
	}
	if filter.Offset, ok = h.intParam(w, r, "offset"); !ok {
		return
	}

	restaurants, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, restaurants)
}

// GetByID handles GET /api/restaurants/{id} requests.
func (h *RestaurantHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, restaurant)
}

// intParam reads an optional integer query parameter. Absent means zero.
func (h *RestaurantHandler) intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, model.NewValidationError("Query parameter "+name+" must be an integer."), h.logger)
		return 0, false
	}
	return v, true
}
