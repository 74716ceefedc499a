package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
	"shopdesk/internal/validation"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")

type API interface {
	Login(ctx context.Context, email, password string) (backend.LoginResponse, error)
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Service struct {
	api   API
	store *Store
	val   *validation.Validator
	log   *slog.Logger
}

func NewService(api API, store *Store, val *validation.Validator, log *slog.Logger) *Service {
	return &Service{api: api, store: store, val: val, log: log}
}

func (s *Service) Store() *Store {
	return s.store
}

// Login checks the credentials with the backend and begins a session with
// the user it returns.
func (s *Service) Login(ctx context.Context, f LoginForm) (models.User, error) {
	f.Email = strings.TrimSpace(f.Email)
	if err := s.val.Check(f); err != nil {
		return models.User{}, err
	}

	resp, err := s.api.Login(ctx, f.Email, f.Password)
	if err != nil {
		var se *backend.StatusError
		if errors.As(err, &se) && se.StatusCode >= http.StatusBadRequest && se.StatusCode < http.StatusInternalServerError {
			s.log.Warn("session login: rejected", slog.String("email", f.Email), slog.Int("status", se.StatusCode))
			return models.User{}, ErrInvalidCredentials
		}
		s.log.Error("session login: failed", slog.String("email", f.Email), slog.String("error", err.Error()))
		return models.User{}, err
	}
	if resp.User.ID == "" {
		s.log.Error("session login: response without user", slog.String("email", f.Email))
		return models.User{}, ErrInvalidCredentials
	}

	s.store.Begin(resp.User)
	s.log.Info("session login: ok", slog.String("user_id", resp.User.ID))
	return resp.User, nil
}

func (s *Service) Logout() {
	if user, ok := s.store.Current(); ok {
		s.log.Info("session logout: ok", slog.String("user_id", user.ID))
	}
	s.store.End()
}
