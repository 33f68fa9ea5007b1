package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"foodpedia/internal/auth"
	"foodpedia/internal/model"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var statusByCode = map[string]int{
	model.ErrCodeInvalidJSON:        http.StatusBadRequest,
	model.ErrCodeInvalidID:          http.StatusBadRequest,
	model.ErrCodeValidationFailed:   http.StatusBadRequest,
	model.ErrCodeInvalidRating:      http.StatusBadRequest,
	model.ErrCodeReviewTooShort:     http.StatusBadRequest,
	model.ErrCodeInvalidSort:        http.StatusBadRequest,
	model.ErrCodeUnauthorised:       http.StatusUnauthorized,
	model.ErrCodeInvalidCredentials: http.StatusUnauthorized,
	model.ErrCodeForbidden:          http.StatusForbidden,
	model.ErrCodeRestaurantNotFound: http.StatusNotFound,
	model.ErrCodeReviewNotFound:     http.StatusNotFound,
	model.ErrCodeUserNotFound:       http.StatusNotFound,
	model.ErrCodeDuplicateReview:    http.StatusConflict,
	model.ErrCodeEmailTaken:         http.StatusConflict,
}

var (
	errInvalidJSON = model.NewDomainError(model.ErrCodeInvalidJSON, "Request body must be valid JSON.")
	errInvalidID   = model.NewDomainError(model.ErrCodeInvalidID, "Invalid ID format.")
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return
	}
}

// writeError maps err to a status and writes the error envelope. Domain errors keep
// their code and message; anything else is reported as INTERNAL_ERROR.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	resp := model.ErrorResponse{
		Error:         model.ErrCodeInternalError,
		Message:       "An unexpected error occurred.",
		CorrelationID: chimiddleware.GetReqID(r.Context()),
	}
	status := http.StatusInternalServerError

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		if s, ok := statusByCode[domainErr.Code]; ok {
			status = s
			resp.Error = domainErr.Code
			resp.Message = domainErr.Message
		}
	}

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Int("status", status).
		Str("code", resp.Error).
		Str("request_id", resp.CorrelationID).
		Msg("handler error")

	writeJSON(w, status, resp)
}

// decodeJSON decodes the request body into dst, writing INVALID_JSON on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, logger zerolog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, errInvalidJSON, logger.With().AnErr("decode_error", err).Logger())
		return false
	}
	return true
}

// parseUUID parses a path parameter, writing INVALID_ID on failure.
func parseUUID(w http.ResponseWriter, r *http.Request, raw string, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, r, errInvalidID, logger)
		return uuid.Nil, false
	}
	return id, true
}

// principal returns the authenticated caller, writing UNAUTHORIZED when absent.
func principal(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, model.ErrUnauthorised, logger)
		return auth.Principal{}, false
	}
	return p, true
}
