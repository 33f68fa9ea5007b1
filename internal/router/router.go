package router

import (
	"encoding/json"
	"net/http"

	"foodpedia/internal/handler"
	"foodpedia/internal/middleware"
	"foodpedia/internal/model"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Middleware order: RequestID -> Recovery -> Logging -> CORS. Write routes also
// require a bearer token.
func New(
	restaurantHandler *handler.RestaurantHandler,
	reviewHandler *handler.ReviewHandler,
	authHandler *handler.AuthHandler,
	statsHandler *handler.StatsHandler,
	tokens middleware.TokenParser,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeRouteError(w, req, http.StatusNotFound, "NOT_FOUND", "Route not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeRouteError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed.")
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	authenticate := middleware.Authenticate(tokens, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(authenticate).Get("/me", authHandler.Me)
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", restaurantHandler.List)
			r.Get("/{id}", restaurantHandler.GetByID)
			r.Get("/{id}/reviews", reviewHandler.ListByRestaurant)
			r.With(authenticate).Post("/{id}/reviews", reviewHandler.Create)
		})

		r.Route("/reviews/{id}", func(r chi.Router) {
			r.Use(authenticate)
			r.Put("/", reviewHandler.Update)
			r.Delete("/", reviewHandler.Delete)
		})

		r.Get("/users/{id}/reviews", reviewHandler.ListByUser)
		r.Get("/stats", statsHandler.Get)
	})

	return r
}

func writeRouteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: chimiddleware.GetReqID(r.Context()),
	})
}
