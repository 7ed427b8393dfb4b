package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(app *App, allowedOrigin string) http.Handler {
	registerMetrics()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(allowedOrigin))

	r.Get("/", app.HealthHandler)
	r.Get("/ping", PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", app.StartSessionHandler)
		r.Post("/session/{sessionID}/challenge", app.RecordChallengeHandler)
		r.Post("/verify", app.VerifyHandler)
		r.Get("/stats", app.StatsHandler)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// corsMiddleware lets the capture front end call the API from another
// origin.
func corsMiddleware(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
