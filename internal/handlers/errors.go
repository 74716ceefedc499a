package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"shopdesk/internal/appointments"
	"shopdesk/internal/catalog"
	"shopdesk/internal/httpx"
	"shopdesk/internal/models"
	"shopdesk/internal/projects"
	"shopdesk/internal/recovery"
	"shopdesk/internal/session"
	"shopdesk/internal/siteinfo"
	"shopdesk/internal/transport"
)

// writeError maps a domain or backend error onto the console's status codes.
func writeError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	if details, ok := httpx.ValidationDetails(err); ok {
		log.Warn(op+": validation error", slog.Any("fields", details))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	var conversion *appointments.ConversionError
	var cooldown *recovery.CooldownError
	switch {
	case errors.As(err, &conversion):
		log.Error(op+": partial failure", slog.String("appointment_id", conversion.AppointmentID), slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "appointment finished but the project could not be created", map[string]string{
			"appointmentStatus": string(models.AppointmentFinished),
		})
	case errors.As(err, &cooldown):
		w.Header().Set("Retry-After", strconv.Itoa(int(cooldown.Remaining.Seconds()+0.999)))
		transport.WriteError(w, http.StatusTooManyRequests, recovery.Message(err), nil)
	case errors.Is(err, session.ErrNoSession):
		transport.WriteError(w, http.StatusUnauthorized, "not signed in", nil)
	case errors.Is(err, session.ErrInvalidCredentials):
		log.Warn(op + ": invalid credentials")
		transport.WriteError(w, http.StatusUnauthorized, "Incorrect email or password. Please try again.", nil)
	case errors.Is(err, appointments.ErrNotFound),
		errors.Is(err, projects.ErrNotFound),
		errors.Is(err, siteinfo.ErrNotConfigured):
		transport.WriteError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, appointments.ErrBusy):
		transport.WriteError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, appointments.ErrInvalidTransition),
		errors.Is(err, appointments.ErrContactedLocked),
		errors.Is(err, recovery.ErrWrongStep),
		errors.Is(err, recovery.ErrNoCode):
		log.Warn(op+": conflict", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, appointments.ErrInvalidStatus),
		errors.Is(err, appointments.ErrInvalidAction),
		errors.Is(err, projects.ErrInvalidStatus),
		errors.Is(err, projects.ErrEmptyUpdate),
		errors.Is(err, catalog.ErrInvalidType):
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, recovery.ErrUnknownEmail):
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"email": recovery.Message(err)})
	case errors.Is(err, recovery.ErrCodeMismatch):
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"otp": recovery.Message(err)})
	case errors.Is(err, recovery.ErrLookupFailed):
		transport.WriteError(w, http.StatusBadGateway, recovery.Message(err), nil)
	default:
		log.Error(op+": backend error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "backend unavailable", nil)
	}
}

// requireConfirmation answers 428 with the prompt to show when the request
// was not confirmed.
func requireConfirmation(w http.ResponseWriter, confirmed bool, prompt models.Prompt) bool {
	if confirmed {
		return true
	}
	transport.WriteError(w, http.StatusPreconditionRequired, "confirmation required", map[string]string{
		"title":   prompt.Title,
		"message": prompt.Message,
	})
	return false
}

type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

// confirmedByQuery reads ?confirm=true, used by DELETE routes.
func confirmedByQuery(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}
