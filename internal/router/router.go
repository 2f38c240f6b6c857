package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"teacher-transfer-system/internal/config"
	"teacher-transfer-system/internal/handler"
	"teacher-transfer-system/internal/middleware"
	"teacher-transfer-system/internal/model"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Schools   *handler.SchoolHandler
	Teachers  *handler.TeacherHandler
	Transfers *handler.TransferHandler
	Stats     *handler.StatsHandler
}

// New assembles the HTTP surface: public auth and file routes, then the
// authenticated API with per-role gates on the mutation endpoints.
func New(cfg *config.Config, authMW *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()

	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimit.Handler)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", healthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)
			r.With(authMW.RequireAuth).Get("/me", h.Auth.Me)
		})

		r.Route("/files", func(r chi.Router) {
			r.Get("/{category}/{name}", h.Teachers.Document)
			r.Get("/{category}/{name}/thumbnail", h.Teachers.Thumbnail)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMW.RequireAuth)

			r.Route("/schools", func(r chi.Router) {
				r.Get("/", h.Schools.List)
				r.Get("/{id}", h.Schools.Get)

				r.Group(func(r chi.Router) {
					r.Use(authMW.RequireRoles(model.RoleAdmin))
					r.Post("/", h.Schools.Create)
					r.Put("/{id}", h.Schools.Update)
					r.Delete("/{id}", h.Schools.Delete)
				})
			})

			r.Route("/teachers", func(r chi.Router) {
				r.Get("/", h.Teachers.List)
				r.Get("/{id}", h.Teachers.Get)
				r.Put("/{id}", h.Teachers.Update)
			})

			r.Route("/transfers", func(r chi.Router) {
				r.Get("/", h.Transfers.List)
				r.Get("/{id}", h.Transfers.Get)
				r.Post("/", h.Transfers.Create)
				r.With(authMW.RequireRoles(model.RoleAdmin, model.RoleHeadteacher)).
					Put("/{id}/status", h.Transfers.UpdateStatus)
			})

			r.Get("/stats", h.Stats.Overview)
			r.Get("/notifications", h.Stats.Notifications)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, model.APIResponse{
			Success: false,
			Error:   &model.APIError{Code: "NOT_FOUND", Message: "route not found"},
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, model.APIResponse{
			Success: false,
			Error:   &model.APIError{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"},
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
