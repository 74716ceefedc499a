// Package siteinfo edits the single-record about and contact documents and
// lists customer feedback.
package siteinfo

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
	"shopdesk/internal/validation"
)

var ErrNotConfigured = errors.New("site information not configured")

type API interface {
	About(ctx context.Context) ([]models.About, error)
	UpdateAbout(ctx context.Context, id, description string) error
	Contacts(ctx context.Context) ([]models.Contact, error)
	UpdateContact(ctx context.Context, id string, u backend.ContactUpdate) error
	Feedback(ctx context.Context) ([]models.Feedback, error)
}

type Service struct {
	api API
	val *validation.Validator
	log *slog.Logger
}

func NewService(api API, val *validation.Validator, log *slog.Logger) *Service {
	return &Service{api: api, val: val, log: log}
}

// About returns the first about entry.
func (s *Service) About(ctx context.Context) (models.About, error) {
	items, err := s.api.About(ctx)
	if err != nil {
		s.log.Error("about get: fetch failed", slog.String("error", err.Error()))
		return models.About{}, err
	}
	if len(items) == 0 {
		return models.About{}, ErrNotConfigured
	}
	return items[0], nil
}

type AboutForm struct {
	Description string `json:"description" validate:"notblank"`
}

func (s *Service) UpdateAbout(ctx context.Context, f AboutForm) (models.About, error) {
	if err := s.val.Check(f); err != nil {
		return models.About{}, err
	}
	current, err := s.About(ctx)
	if err != nil {
		return models.About{}, err
	}
	current.Description = strings.TrimSpace(f.Description)
	if err := s.api.UpdateAbout(ctx, current.ID, current.Description); err != nil {
		s.log.Error("about update: failed", slog.String("id", current.ID), slog.String("error", err.Error()))
		return models.About{}, err
	}
	s.log.Info("about update: ok", slog.String("id", current.ID))
	return current, nil
}

// Contact returns the first contact entry.
func (s *Service) Contact(ctx context.Context) (models.Contact, error) {
	items, err := s.api.Contacts(ctx)
	if err != nil {
		s.log.Error("contact get: fetch failed", slog.String("error", err.Error()))
		return models.Contact{}, err
	}
	if len(items) == 0 {
		return models.Contact{}, ErrNotConfigured
	}
	return items[0], nil
}

// ContactForm fields may be left empty; empty values clear the field.
type ContactForm struct {
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email" validate:"omitempty,email"`
	FbLink        string `json:"fbLink" validate:"omitempty,url"`
}

func (s *Service) UpdateContact(ctx context.Context, f ContactForm) (models.Contact, error) {
	f.ContactNumber = strings.TrimSpace(f.ContactNumber)
	f.Email = strings.TrimSpace(f.Email)
	f.FbLink = strings.TrimSpace(f.FbLink)
	if err := s.val.Check(f); err != nil {
		return models.Contact{}, err
	}
	current, err := s.Contact(ctx)
	if err != nil {
		return models.Contact{}, err
	}
	update := backend.ContactUpdate{ContactNumber: f.ContactNumber, Email: f.Email, FbLink: f.FbLink}
	if err := s.api.UpdateContact(ctx, current.ID, update); err != nil {
		s.log.Error("contact update: failed", slog.String("id", current.ID), slog.String("error", err.Error()))
		return models.Contact{}, err
	}
	s.log.Info("contact update: ok", slog.String("id", current.ID))
	return models.Contact{ID: current.ID, ContactNumber: f.ContactNumber, Email: f.Email, FbLink: f.FbLink}, nil
}

// Feedback lists customer feedback, newest first.
func (s *Service) Feedback(ctx context.Context) ([]models.Feedback, error) {
	items, err := s.api.Feedback(ctx)
	if err != nil {
		s.log.Error("feedback list: fetch failed", slog.String("error", err.Error()))
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
