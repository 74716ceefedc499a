package catalog

import (
	"context"
	"log/slog"
	"strings"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
)

type ProductForm struct {
	Name        string             `json:"name" validate:"notblank"`
	Description string             `json:"description" validate:"notblank"`
	Type        models.ProductType `json:"type" validate:"required,producttype"`
}

func (f ProductForm) fields() backend.ProductFields {
	return backend.ProductFields{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Type:        f.Type,
	}
}

func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	items, err := s.api.Products(ctx)
	if err != nil {
		s.log.Error("products list: fetch failed", slog.String("error", err.Error()))
		return nil, err
	}
	return items, nil
}

func (s *Service) ProductsByType(ctx context.Context, t models.ProductType) ([]models.Product, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	items, err := s.api.ProductsByType(ctx, t)
	if err != nil {
		s.log.Error("products list: fetch failed", slog.String("type", string(t)), slog.String("error", err.Error()))
		return nil, err
	}
	return items, nil
}

// CreateProduct adds a product. An image is required.
func (s *Service) CreateProduct(ctx context.Context, f ProductForm, image backend.Upload) error {
	if err := requireImage(image, s.val.Check(f)); err != nil {
		return err
	}
	if err := s.api.CreateProduct(ctx, f.fields(), image); err != nil {
		s.logFailure("products create: failed", "", err)
		return err
	}
	s.log.Info("products create: ok", slog.String("type", string(f.Type)))
	return nil
}

// UpdateProduct edits a product. Without an image the current one is kept.
func (s *Service) UpdateProduct(ctx context.Context, id string, f ProductForm, image backend.Upload) error {
	if err := s.val.Check(f); err != nil {
		return err
	}
	if err := s.api.UpdateProduct(ctx, id, f.fields(), image); err != nil {
		s.logFailure("products update: failed", id, err)
		return err
	}
	s.log.Info("products update: ok", slog.String("id", id), slog.Bool("image", !image.Empty()))
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.logFailure("products delete: failed", id, err)
		return err
	}
	s.log.Info("products delete: ok", slog.String("id", id))
	return nil
}
