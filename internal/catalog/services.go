package catalog

import (
	"context"
	"log/slog"
	"strings"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
)

type ServiceForm struct {
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Price       string `json:"price" validate:"required,numeric"`
}

func (f ServiceForm) fields() backend.ServiceFields {
	return backend.ServiceFields{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       strings.TrimSpace(f.Price),
	}
}

func (s *Service) Services(ctx context.Context) ([]models.Service, error) {
	items, err := s.api.Services(ctx)
	if err != nil {
		s.log.Error("services list: fetch failed", slog.String("error", err.Error()))
		return nil, err
	}
	return items, nil
}

func (s *Service) CreateService(ctx context.Context, f ServiceForm, image backend.Upload) error {
	if err := requireImage(image, s.val.Check(f)); err != nil {
		return err
	}
	if err := s.api.CreateService(ctx, f.fields(), image); err != nil {
		s.logFailure("services create: failed", "", err)
		return err
	}
	s.log.Info("services create: ok", slog.String("name", strings.TrimSpace(f.Name)))
	return nil
}

func (s *Service) UpdateService(ctx context.Context, id string, f ServiceForm, image backend.Upload) error {
	if err := s.val.Check(f); err != nil {
		return err
	}
	if err := s.api.UpdateService(ctx, id, f.fields(), image); err != nil {
		s.logFailure("services update: failed", id, err)
		return err
	}
	s.log.Info("services update: ok", slog.String("id", id), slog.Bool("image", !image.Empty()))
	return nil
}

func (s *Service) DeleteService(ctx context.Context, id string) error {
	if err := s.api.DeleteService(ctx, id); err != nil {
		s.logFailure("services delete: failed", id, err)
		return err
	}
	s.log.Info("services delete: ok", slog.String("id", id))
	return nil
}
