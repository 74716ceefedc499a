package appointments

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"shopdesk/internal/backend"
	"shopdesk/internal/listing"
	"shopdesk/internal/models"
	"shopdesk/internal/validation"
)

var (
	ErrNotFound        = errors.New("appointment not found")
	ErrContactedLocked = errors.New("contacted flag can only change while pending or accepted")
	ErrBusy            = errors.New("action already in progress")
)

// API is the part of the backend the workflow talks to.
type API interface {
	Appointments(ctx context.Context) ([]models.Appointment, error)
	AppointmentsByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error
	ToggleContacted(ctx context.Context, id string) error
	CreateProject(ctx context.Context, p backend.NewProject) error
}

type Service struct {
	api      API
	val      *validation.Validator
	location *time.Location
	log      *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewService(api API, val *validation.Validator, location *time.Location, log *slog.Logger) *Service {
	return &Service{
		api:      api,
		val:      val,
		location: location,
		log:      log,
		now:      time.Now,
		inflight: make(map[string]struct{}),
	}
}

// WithClock replaces the clock used by the "not today" rule.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// begin marks key as running. The returned func must be called when the
// call settles.
func (s *Service) begin(key string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return nil, ErrBusy
	}
	s.inflight[key] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}, nil
}

// List returns the appointments in status. Every failure, including the
// backend's "No appointments found" answer, yields an empty list.
func (s *Service) List(ctx context.Context, status models.AppointmentStatus) []models.Appointment {
	if !status.Valid() {
		s.log.Warn("appointments list: invalid status", slog.String("status", string(status)))
		return []models.Appointment{}
	}
	items, err := s.api.AppointmentsByStatus(ctx, status)
	if err != nil {
		if errors.Is(err, backend.ErrNoResults) {
			s.log.Info("appointments list: empty", slog.String("status", string(status)))
		} else {
			// TODO: surface fetch failures separately once the shell can show a retry state.
			s.log.Warn("appointments list: fetch failed", slog.String("status", string(status)), slog.String("error", err.Error()))
		}
		return []models.Appointment{}
	}
	if items == nil {
		items = []models.Appointment{}
	}
	return items
}

func (s *Service) All(ctx context.Context) ([]models.Appointment, error) {
	items, err := s.api.Appointments(ctx)
	if err != nil {
		s.log.Error("appointments all: fetch failed", slog.String("error", err.Error()))
		return nil, err
	}
	return items, nil
}

func (s *Service) Find(ctx context.Context, id string) (models.Appointment, error) {
	id = strings.TrimSpace(id)
	items, err := s.All(ctx)
	if err != nil {
		return models.Appointment{}, err
	}
	for _, a := range items {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Appointment{}, ErrNotFound
}

// NewView returns an appointment list view starting on the pending tab.
func (s *Service) NewView() *listing.View[models.Appointment] {
	fetch := func(ctx context.Context, tab string) []models.Appointment {
		return s.List(ctx, models.AppointmentStatus(tab))
	}
	return listing.New(fetch, Match, string(models.AppointmentPending))
}

// Apply runs action on appt. It sends nothing when the transition is not
// allowed from the appointment's current status.
func (s *Service) Apply(ctx context.Context, appt models.Appointment, action Action) error {
	next, err := Next(appt.Status, action)
	if err != nil {
		s.log.Warn("appointments action: invalid transition",
			slog.String("appointment_id", appt.ID),
			slog.String("status", string(appt.Status)),
			slog.String("action", string(action)),
		)
		return err
	}

	release, err := s.begin(string(action) + ":" + appt.ID)
	if err != nil {
		return err
	}
	defer release()

	if err := s.api.UpdateAppointmentStatus(ctx, appt.ID, next); err != nil {
		s.log.Error("appointments action: update failed",
			slog.String("appointment_id", appt.ID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.log.Info("appointments action: ok",
		slog.String("appointment_id", appt.ID),
		slog.String("action", string(action)),
		slog.String("status", string(next)),
	)
	return nil
}

func (s *Service) Accept(ctx context.Context, appt models.Appointment) error {
	return s.Apply(ctx, appt, Accept)
}

func (s *Service) Cancel(ctx context.Context, appt models.Appointment) error {
	return s.Apply(ctx, appt, Cancel)
}

func (s *Service) Finish(ctx context.Context, appt models.Appointment) error {
	return s.Apply(ctx, appt, Finish)
}

func (s *Service) Revert(ctx context.Context, appt models.Appointment) error {
	return s.Apply(ctx, appt, Revert)
}

// ToggleContacted flips the contacted flag. The status is left alone.
func (s *Service) ToggleContacted(ctx context.Context, appt models.Appointment) error {
	if !CanToggleContacted(appt.Status) {
		return ErrContactedLocked
	}

	release, err := s.begin("contacted:" + appt.ID)
	if err != nil {
		return err
	}
	defer release()

	if err := s.api.ToggleContacted(ctx, appt.ID); err != nil {
		s.log.Error("appointments contacted: update failed",
			slog.String("appointment_id", appt.ID),
			slog.String("error", err.Error()),
		)
		return err
	}
	s.log.Info("appointments contacted: ok",
		slog.String("appointment_id", appt.ID),
		slog.Bool("contacted", !appt.Contacted),
	)
	return nil
}
