package http

import (
	"log/slog"
	"net/http"

	"ayyam/internal/auth"
	"ayyam/internal/config"
	"ayyam/internal/event"
	"ayyam/internal/http/handler"
	mw "ayyam/internal/http/middleware"
	"ayyam/internal/jobs"
	"ayyam/internal/media"
	"ayyam/internal/role"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)

	roles := &role.Service{DB: db}

	eventH := &handler.EventHandler{Store: &event.GormStore{DB: db}, Log: log}
	profileH := &handler.ProfileHandler{DB: db, Log: log}
	roleH := &handler.RoleHandler{Roles: roles, Log: log}
	translationH := &handler.TranslationHandler{DB: db, Log: log}
	adminH := &handler.AdminHandler{DB: db, Roles: roles, Log: log}

	jobsRepo := &jobs.Repo{DB: db}
	emailH := &handler.EmailHandler{DB: db, Jobs: jobsRepo, Configured: cfg.SMTPConfigured(), Log: log}

	mediaH := &handler.MediaHandler{Logs: &media.LogStore{DB: db}, Log: log}
	if cfg.OpenAIAPIKey != "" {
		mediaH.Images = media.NewImageClient(cfg.OpenAIAPIKey)
	}

	r.Route("/api", func(r chi.Router) {
		// Public: translation reads feed every client before login.
		r.Get("/translations", translationH.List)
		r.Get("/translations/dictionary", translationH.Dictionary)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(jwtSvc))

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventH.List)
				r.Post("/", eventH.Create)
				r.Post("/import", eventH.Import)
				r.Put("/{id}", eventH.Update)
				r.Delete("/{id}", eventH.Delete)
			})

			r.Get("/profile", profileH.Get)
			r.Post("/profile", profileH.Create)
			r.Put("/profile", profileH.Update)

			r.Get("/user/role", roleH.Current)
			r.Post("/user/role/check", roleH.Check)

			r.Post("/generate-image", mediaH.GenerateImage)
			r.Post("/upload-image", mediaH.UploadImage)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(roles, string(role.Admin)))

				r.Post("/translations", translationH.Create)
				r.Put("/translations/{key}", translationH.Update)
				r.Delete("/translations/{key}", translationH.Delete)

				r.Post("/send-email", emailH.Send)

				r.Get("/admin/users", adminH.ListUsers)
				r.Put("/admin/users/{id}/role", adminH.AssignRole)
			})
		})
	})

	return r
}
