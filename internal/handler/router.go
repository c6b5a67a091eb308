package handler

import (
	"net/http"

	"financial-doc-classifier/internal/domain"
	"financial-doc-classifier/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterOptions carries the optional pieces of the HTTP stack.
type RouterOptions struct {
	AllowedOrigins []string
	Logger         domain.Logger
	// Metrics is optional; /metrics is only mounted when set.
	Metrics *metrics.Metrics
	// AuthMiddleware guards /api/v1 when set.
	AuthMiddleware func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(classifyHandler *ClassifyHandler, authHandler *AuthHandler, opts RouterOptions) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)
	if opts.Logger != nil {
		router.Use(NewLoggingMiddleware(opts.Logger))
	}
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)
	}

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "financial-doc-classifier"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	if opts.AuthMiddleware != nil {
		api.Use(opts.AuthMiddleware)
		api.HandleFunc("/auth/validate", authHandler.ValidateToken).Methods(http.MethodGet)
	}

	api.HandleFunc("/categories", classifyHandler.Categories).Methods(http.MethodGet)
	api.HandleFunc("/formats", classifyHandler.Formats).Methods(http.MethodGet)
	api.HandleFunc("/classify", classifyHandler.Classify).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			requestIDHeader,
		},
		ExposedHeaders: []string{
			requestIDHeader,
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
