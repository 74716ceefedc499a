// Package catalog manages the product catalogue, the service catalogue and
// the photo gallery. Uploads are passed through to the backend untouched.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
	"shopdesk/internal/validation"
)

var ErrInvalidType = errors.New("invalid product type")

type API interface {
	Products(ctx context.Context) ([]models.Product, error)
	ProductsByType(ctx context.Context, t models.ProductType) ([]models.Product, error)
	CreateProduct(ctx context.Context, f backend.ProductFields, image backend.Upload) error
	UpdateProduct(ctx context.Context, id string, f backend.ProductFields, image backend.Upload) error
	DeleteProduct(ctx context.Context, id string) error

	Services(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, f backend.ServiceFields, image backend.Upload) error
	UpdateService(ctx context.Context, id string, f backend.ServiceFields, image backend.Upload) error
	DeleteService(ctx context.Context, id string) error

	Images(ctx context.Context) ([]models.Image, error)
	UploadImage(ctx context.Context, image backend.Upload) error
	DeleteImage(ctx context.Context, id string) error
	ToggleFeatured(ctx context.Context, id string) error
}

type Service struct {
	api API
	val *validation.Validator
	log *slog.Logger
}

func NewService(api API, val *validation.Validator, log *slog.Logger) *Service {
	return &Service{api: api, val: val, log: log}
}

func ParseType(s string) (models.ProductType, error) {
	t := models.ProductType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// Kind names a catalogue collection for delete prompts.
type Kind string

const (
	KindProduct Kind = "product"
	KindService Kind = "service"
	KindImage   Kind = "image"
)

func DeletePrompt(kind Kind) models.Prompt {
	switch kind {
	case KindService:
		return models.Prompt{Title: "Delete Service", Message: "Are you sure you want to delete this service?"}
	case KindImage:
		return models.Prompt{Title: "Delete Image", Message: "Are you sure you want to delete this image?"}
	}
	return models.Prompt{Title: "Delete Item", Message: "Are you sure you want to delete this item?"}
}

func requireImage(image backend.Upload, err error) error {
	if !image.Empty() {
		return err
	}
	fe, ok := validation.AsFieldErrors(err)
	if !ok {
		if err != nil {
			return err
		}
		fe = validation.FieldErrors{}
	}
	fe["image"] = "is required"
	return fe
}

func (s *Service) logFailure(msg, id string, err error) {
	s.log.Error(msg, slog.String("id", id), slog.String("error", err.Error()))
}
