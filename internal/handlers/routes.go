package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"shopdesk/internal/middleware"
)

// Limits are the limiters in front of the unauthenticated routes that reach
// the backend's account endpoints. A nil limiter disables the check.
type Limits struct {
	Login    middleware.Limiter
	Recovery middleware.Limiter
}

func (s *Server) Routes(limits Limits) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.Log))
	r.Use(middleware.CORS(s.Cfg.Server.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	limit := func(l middleware.Limiter) func(http.Handler) http.Handler {
		if l == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.RateLimit(l, s.Log)
	}

	r.Get("/healthz", s.Healthz)

	r.Route("/api", func(api chi.Router) {
		api.Post("/signup", s.Signup)
		api.With(limit(limits.Login)).Post("/login", s.Login)

		api.Route("/password", func(pw chi.Router) {
			pw.Get("/", s.RecoveryState)
			pw.With(limit(limits.Recovery)).Post("/email", s.RecoverySubmitEmail)
			pw.With(limit(limits.Recovery)).Post("/code", s.RecoverySendCode)
			pw.With(limit(limits.Recovery)).Post("/verify", s.RecoveryVerifyCode)
			pw.Post("/reset", s.RecoveryReset)
			pw.Post("/cancel", s.RecoveryCancel)
		})

		api.Group(func(p chi.Router) {
			p.Use(middleware.RequireSession(s.Tokens, s.Sessions.Store()))

			p.Post("/logout", s.Logout)
			p.Get("/profile", s.GetProfile)
			p.Put("/profile", s.UpdateProfile)

			p.Get("/appointments", s.ListAppointments)
			p.Get("/appointments/{id}", s.GetAppointment)
			p.Get("/appointments/{id}/conversion", s.GetConversion)
			p.Post("/appointments/{id}/contacted", s.ToggleContacted)
			p.Post("/appointments/{id}/convert", s.ConvertAppointment)
			p.Post("/appointments/{id}/{action}", s.ApplyAppointmentAction)

			p.Get("/projects", s.ListProjects)
			p.Get("/projects/{id}", s.GetProject)
			p.Put("/projects/{id}", s.UpdateProject)
			p.Post("/projects/{id}/complete", s.CompleteProject)
			p.Delete("/projects/{id}", s.DeleteProject)

			p.Get("/products", s.ListProducts)
			p.Get("/products/type/{type}", s.ListProductsByType)
			p.Post("/products", s.CreateProduct)
			p.Put("/products/{id}", s.UpdateProduct)
			p.Delete("/products/{id}", s.DeleteProduct)

			p.Get("/services", s.ListServices)
			p.Post("/services", s.CreateService)
			p.Put("/services/{id}", s.UpdateService)
			p.Delete("/services/{id}", s.DeleteService)

			p.Get("/images", s.ListImages)
			p.Post("/images", s.UploadImage)
			p.Delete("/images/{id}", s.DeleteImage)
			p.Post("/images/{id}/featured", s.ToggleFeatured)

			p.Get("/about", s.GetAbout)
			p.Put("/about", s.UpdateAbout)
			p.Get("/contact", s.GetContact)
			p.Put("/contact", s.UpdateContact)
			p.Get("/feedback", s.ListFeedback)

			p.Get("/stats", s.GetStats)
			p.Get("/stats/export", s.ExportStats)
		})
	})

	return r
}
