// Package account registers staff accounts and edits the signed-in user's
// profile.
package account

import (
	"context"
	"log/slog"
	"strings"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
	"shopdesk/internal/session"
	"shopdesk/internal/validation"
)

type API interface {
	Register(ctx context.Context, req backend.SignupRequest) error
	UpdateUser(ctx context.Context, id, firstName, lastName string) (models.User, error)
}

type SignupForm struct {
	FirstName       string `json:"firstName" validate:"notblank"`
	LastName        string `json:"lastName" validate:"notblank"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,strongpassword,alphanum"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type ProfileForm struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
}

type Service struct {
	api   API
	store *session.Store
	val   *validation.Validator
	log   *slog.Logger
}

func NewService(api API, store *session.Store, val *validation.Validator, log *slog.Logger) *Service {
	return &Service{api: api, store: store, val: val, log: log}
}

// Register creates a staff account. It does not sign the user in.
func (s *Service) Register(ctx context.Context, f SignupForm) error {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	if err := s.val.Check(f); err != nil {
		return err
	}

	req := backend.SignupRequest{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
	}
	if err := s.api.Register(ctx, req); err != nil {
		s.log.Error("account signup: failed", slog.String("email", f.Email), slog.String("error", err.Error()))
		return err
	}
	s.log.Info("account signup: ok", slog.String("email", f.Email))
	return nil
}

// UpdateProfile renames the signed-in user and refreshes the session copy
// with the names the backend returned.
func (s *Service) UpdateProfile(ctx context.Context, f ProfileForm) (models.User, error) {
	user, err := s.store.Require()
	if err != nil {
		return models.User{}, err
	}
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	if err := s.val.Check(f); err != nil {
		return models.User{}, err
	}

	updated, err := s.api.UpdateUser(ctx, user.ID, f.FirstName, f.LastName)
	if err != nil {
		s.log.Error("account profile: update failed", slog.String("user_id", user.ID), slog.String("error", err.Error()))
		return models.User{}, err
	}
	if updated.FirstName == "" && updated.LastName == "" {
		updated.FirstName, updated.LastName = f.FirstName, f.LastName
	}

	s.store.Rename(user.ID, updated.FirstName, updated.LastName)
	user.FirstName, user.LastName = updated.FirstName, updated.LastName
	s.log.Info("account profile: ok", slog.String("user_id", user.ID))
	return user, nil
}
