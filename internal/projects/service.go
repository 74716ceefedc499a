package projects

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopdesk/internal/backend"
	"shopdesk/internal/listing"
	"shopdesk/internal/models"
	"shopdesk/internal/schedule"
	"shopdesk/internal/validation"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrInvalidStatus = errors.New("invalid project status")
	ErrEmptyUpdate   = errors.New("nothing to update")
)

type API interface {
	Projects(ctx context.Context) ([]models.Project, error)
	ProjectsByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error)
	UpdateProject(ctx context.Context, id string, u backend.ProjectUpdate) error
	DeleteProject(ctx context.Context, id string) error
}

type Service struct {
	api      API
	val      *validation.Validator
	location *time.Location
	log      *slog.Logger
}

func NewService(api API, val *validation.Validator, location *time.Location, log *slog.Logger) *Service {
	return &Service{api: api, val: val, location: location, log: log}
}

func ParseStatus(s string) (models.ProjectStatus, error) {
	st := models.ProjectStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// List returns the projects in status, or an empty list on any failure.
func (s *Service) List(ctx context.Context, status models.ProjectStatus) []models.Project {
	if !status.Valid() {
		s.log.Warn("projects list: invalid status", slog.String("status", string(status)))
		return []models.Project{}
	}
	items, err := s.api.ProjectsByStatus(ctx, status)
	if err != nil {
		if errors.Is(err, backend.ErrNoResults) {
			s.log.Info("projects list: empty", slog.String("status", string(status)))
		} else {
			s.log.Warn("projects list: fetch failed", slog.String("status", string(status)), slog.String("error", err.Error()))
		}
		return []models.Project{}
	}
	if items == nil {
		items = []models.Project{}
	}
	return items
}

func (s *Service) All(ctx context.Context) ([]models.Project, error) {
	items, err := s.api.Projects(ctx)
	if err != nil {
		s.log.Error("projects all: fetch failed", slog.String("error", err.Error()))
		return nil, err
	}
	return items, nil
}

func (s *Service) Find(ctx context.Context, id string) (models.Project, error) {
	items, err := s.All(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, ErrNotFound
}

// Match is the project search. The created date is compared in its long
// display form, e.g. "March 10, 2025".
func (s *Service) Match(p models.Project, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Service), q) {
		return true
	}
	created := schedule.FormatLong(p.CreatedAt, s.location)
	return created != "" && strings.Contains(created, query)
}

// NewView returns a project list view starting on the ongoing tab.
func (s *Service) NewView() *listing.View[models.Project] {
	fetch := func(ctx context.Context, tab string) []models.Project {
		return s.List(ctx, models.ProjectStatus(tab))
	}
	return listing.New(fetch, s.Match, string(models.ProjectOngoing))
}

// Update is a partial project edit. Nil fields are left alone.
type Update struct {
	Title        *string               `json:"title" validate:"omitnil,notblank"`
	ExpectedDate *string               `json:"expectedDate" validate:"omitnil,date"`
	Status       *models.ProjectStatus `json:"status"`
	Tasks        []models.Task         `json:"tasks"`
}

func (u Update) empty() bool {
	return u.Title == nil && u.ExpectedDate == nil && u.Status == nil && u.Tasks == nil
}

func (s *Service) Update(ctx context.Context, id string, u Update) error {
	if u.empty() {
		return ErrEmptyUpdate
	}
	if err := s.val.Check(u); err != nil {
		return err
	}
	if u.Status != nil && !u.Status.Valid() {
		return validation.FieldErrors{"status": "must be one of ongoing, finished"}
	}

	payload := backend.ProjectUpdate{ExpectedDate: u.ExpectedDate, Status: u.Status}
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		payload.Title = &title
	}
	if u.Tasks != nil {
		tasks := cleanTasks(u.Tasks)
		payload.Tasks = &tasks
	}

	if err := s.api.UpdateProject(ctx, id, payload); err != nil {
		s.log.Error("projects update: failed", slog.String("project_id", id), slog.String("error", err.Error()))
		return err
	}
	s.log.Info("projects update: ok", slog.String("project_id", id))
	return nil
}

// Complete marks a project finished.
func (s *Service) Complete(ctx context.Context, id string) error {
	status := models.ProjectFinished
	return s.Update(ctx, id, Update{Status: &status})
}

func DeletePrompt() models.Prompt {
	return models.Prompt{Title: "Delete Project", Message: "Are you sure you want to delete this project?"}
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteProject(ctx, id); err != nil {
		s.log.Error("projects delete: failed", slog.String("project_id", id), slog.String("error", err.Error()))
		return err
	}
	s.log.Info("projects delete: ok", slog.String("project_id", id))
	return nil
}

func cleanTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		label := strings.TrimSpace(t.Task)
		if label == "" {
			continue
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		out = append(out, models.Task{ID: t.ID, Task: label})
	}
	return out
}
