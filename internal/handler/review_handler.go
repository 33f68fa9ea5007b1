package handler

import (
	"net/http"

	"foodpedia/internal/model"
	"foodpedia/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// ListByRestaurant handles GET /api/restaurants/{id}/reviews requests.
func (h *ReviewHandler) ListByRestaurant(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListByRestaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// Create handles POST /api/restaurants/{id}/reviews requests.
// The restaurant in the path overrides any restaurantId in the body.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	author, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ReviewRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	req.RestaurantID = chi.URLParam(r, "id")

	review, err := h.service.Submit(r.Context(), author, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// Update handles PUT /api/reviews/{id} requests.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	author, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	reviewID, ok := parseUUID(w, r, chi.URLParam(r, "id"), h.logger)
	if !ok {
		return
	}

	var req model.ReviewUpdateRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	review, err := h.service.Update(r.Context(), author, reviewID, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// Delete handles DELETE /api/reviews/{id} requests.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	author, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	reviewID, ok := parseUUID(w, r, chi.URLParam(r, "id"), h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), author, reviewID); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByUser handles GET /api/users/{id}/reviews requests.
func (h *ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(w, r, chi.URLParam(r, "id"), h.logger)
	if !ok {
		return
	}

	reviews, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}
