package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ems/internal/http/handlers"
	"ems/internal/http/middleware"
	"ems/internal/logger"
	"ems/internal/metrics"
	"ems/internal/nav"
	"ems/internal/policy"
	"ems/web"
)

func NewRouter(log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logger.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SanitizeForm)
	r.Use(middleware.CSRFMiddleware)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/healthz", handlers.Healthz)
	r.Handle("/metrics", metrics.Default.Handler())

	r.Get("/login", handlers.ShowLogin)
	r.Post("/login", handlers.PostLogin)
	r.Post("/logout", handlers.PostLogout)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, nav.RootPath, http.StatusSeeOther)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthRequired)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", handlers.ShowDashboard)
			r.With(middleware.Require(policy.ActionRead, policy.ResourceEmployees)).
				Get("/employees", handlers.ListEmployees)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", handlers.ListAttendance)
			r.Post("/check-in", handlers.PostCheckIn)
			r.Post("/check-out", handlers.PostCheckOut)
		})

		r.Get("/payroll", handlers.ListPayroll)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", handlers.ShowProfile)
			r.Post("/", handlers.PostUpdateProfile)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(middleware.Require(policy.ActionRead, policy.ResourceReports))
			r.Get("/", handlers.ShowReports)
			r.Get("/export", handlers.ExportReports)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", handlers.ListNotifications)
			r.Get("/dropdown", handlers.ShowNotificationDropdown)
			r.Post("/{id}/read", handlers.PostMarkNotificationRead)
		})
	})

	return r
}
