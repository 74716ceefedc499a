package handlers

import (
	"log/slog"
	"net/http"

	"shopdesk/internal/account"
	"shopdesk/internal/appointments"
	"shopdesk/internal/auth"
	"shopdesk/internal/catalog"
	"shopdesk/internal/config"
	"shopdesk/internal/listing"
	"shopdesk/internal/middleware"
	"shopdesk/internal/models"
	"shopdesk/internal/projects"
	"shopdesk/internal/recovery"
	"shopdesk/internal/session"
	"shopdesk/internal/siteinfo"
	"shopdesk/internal/stats"
	"shopdesk/internal/validation"
)

// Server is the console API the presentation shell drives. It serves one
// operator: the session, the list views and the recovery flow are shared by
// every request.
type Server struct {
	Cfg    *config.Config
	Val    *validation.Validator
	Log    *slog.Logger
	Tokens *auth.Manager

	Sessions     *session.Service
	Accounts     *account.Service
	Recovery     *recovery.Flow
	Appointments *appointments.Service
	Projects     *projects.Service
	Catalog      *catalog.Service
	SiteInfo     *siteinfo.Service
	Stats        *stats.Service

	AppointmentView *listing.View[models.Appointment]
	ProjectView     *listing.View[models.Project]
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
