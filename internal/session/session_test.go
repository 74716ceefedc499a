package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
	"shopdesk/internal/validation"
)

type fakeAPI struct {
	resp  backend.LoginResponse
	err   error
	calls int
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (backend.LoginResponse, error) {
	f.calls++
	return f.resp, f.err
}

func newTestService(api API) *Service {
	return NewService(api, NewStore(), validation.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	if _, ok := s.Current(); ok {
		t.Fatalf("fresh store should be empty")
	}
	if _, err := s.Require(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	s.Begin(models.User{ID: "u1", FirstName: "Ana"})
	s.Rename("u1", "Ann", "Cruz")
	user, ok := s.Current()
	if !ok || user.FirstName != "Ann" || user.LastName != "Cruz" {
		t.Fatalf("unexpected user %+v", user)
	}
	s.Rename("u2", "X", "Y")
	if user, _ := s.Current(); user.FirstName != "Ann" {
		t.Fatalf("rename for another user should be ignored")
	}

	s.End()
	if _, ok := s.Current(); ok {
		t.Fatalf("session should be ended")
	}
}

func TestLoginBeginsSession(t *testing.T) {
	api := &fakeAPI{resp: backend.LoginResponse{User: models.User{ID: "u1", Email: "ana@shop.ph"}}}
	svc := newTestService(api)

	user, err := svc.Login(context.Background(), LoginForm{Email: " ana@shop.ph ", Password: "Secret1"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if current, ok := svc.Store().Current(); !ok || current.ID != user.ID {
		t.Fatalf("session not started")
	}
	svc.Logout()
	if _, ok := svc.Store().Current(); ok {
		t.Fatalf("session should end on logout")
	}
}

func TestLoginValidatesBeforeCalling(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(api)

	_, err := svc.Login(context.Background(), LoginForm{Email: "ana", Password: ""})
	fe, ok := validation.AsFieldErrors(err)
	if !ok || fe["email"] == "" || fe["password"] == "" {
		t.Fatalf("expected email and password errors, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("expected no backend call")
	}
}

func TestLoginRejected(t *testing.T) {
	api := &fakeAPI{err: &backend.StatusError{Method: http.MethodPost, Path: "login", StatusCode: http.StatusUnauthorized}}
	svc := newTestService(api)

	_, err := svc.Login(context.Background(), LoginForm{Email: "ana@shop.ph", Password: "bad"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, ok := svc.Store().Current(); ok {
		t.Fatalf("failed login must not begin a session")
	}
}

func TestLoginBackendDown(t *testing.T) {
	api := &fakeAPI{err: &backend.StatusError{Method: http.MethodPost, Path: "login", StatusCode: http.StatusBadGateway}}
	svc := newTestService(api)

	_, err := svc.Login(context.Background(), LoginForm{Email: "ana@shop.ph", Password: "x"})
	var se *backend.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
}
