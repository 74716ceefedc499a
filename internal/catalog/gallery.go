package catalog

import (
	"context"
	"log/slog"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
	"shopdesk/internal/validation"
)

func (s *Service) Images(ctx context.Context) ([]models.Image, error) {
	items, err := s.api.Images(ctx)
	if err != nil {
		s.log.Error("images list: fetch failed", slog.String("error", err.Error()))
		return nil, err
	}
	return items, nil
}

// Featured filters images down to the ones tagged for the public site.
func Featured(images []models.Image) []models.Image {
	out := make([]models.Image, 0, len(images))
	for _, img := range images {
		if img.Featured {
			out = append(out, img)
		}
	}
	return out
}

func (s *Service) UploadImage(ctx context.Context, image backend.Upload) error {
	if image.Empty() {
		return validation.FieldErrors{"image": "is required"}
	}
	if err := s.api.UploadImage(ctx, image); err != nil {
		s.logFailure("images upload: failed", "", err)
		return err
	}
	s.log.Info("images upload: ok", slog.String("file", image.FileName))
	return nil
}

func (s *Service) DeleteImage(ctx context.Context, id string) error {
	if err := s.api.DeleteImage(ctx, id); err != nil {
		s.logFailure("images delete: failed", id, err)
		return err
	}
	s.log.Info("images delete: ok", slog.String("id", id))
	return nil
}

// ToggleFeatured flips the featured tag of one image. Any number of images
// may be featured at once.
func (s *Service) ToggleFeatured(ctx context.Context, id string) error {
	if err := s.api.ToggleFeatured(ctx, id); err != nil {
		s.logFailure("images featured: failed", id, err)
		return err
	}
	s.log.Info("images featured: ok", slog.String("id", id))
	return nil
}
