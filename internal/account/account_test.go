package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
	"shopdesk/internal/session"
	"shopdesk/internal/validation"
)

type fakeAPI struct {
	registered []backend.SignupRequest
	updated    models.User
	renames    int
}

func (f *fakeAPI) Register(ctx context.Context, req backend.SignupRequest) error {
	f.registered = append(f.registered, req)
	return nil
}

func (f *fakeAPI) UpdateUser(ctx context.Context, id, firstName, lastName string) (models.User, error) {
	f.renames++
	return f.updated, nil
}

func newTestService(api API, store *session.Store) *Service {
	return NewService(api, store, validation.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validSignup() SignupForm {
	return SignupForm{
		FirstName:       "Ana",
		LastName:        "Cruz",
		Email:           "ana@shop.ph",
		Password:        "Secret1",
		ConfirmPassword: "Secret1",
	}
}

func TestRegister(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(api, session.NewStore())

	if err := svc.Register(context.Background(), validSignup()); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if len(api.registered) != 1 || api.registered[0].Password != "Secret1" {
		t.Fatalf("unexpected requests: %+v", api.registered)
	}
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*SignupForm)
		field string
	}{
		{"short", func(f *SignupForm) { f.Password, f.ConfirmPassword = "Ab1", "Ab1" }, "password"},
		{"no upper", func(f *SignupForm) { f.Password, f.ConfirmPassword = "secret1", "secret1" }, "password"},
		{"symbol", func(f *SignupForm) { f.Password, f.ConfirmPassword = "Secret1!", "Secret1!" }, "password"},
		{"mismatch", func(f *SignupForm) { f.ConfirmPassword = "Secret2" }, "confirmPassword"},
		{"bad email", func(f *SignupForm) { f.Email = "ana@" }, "email"},
		{"blank name", func(f *SignupForm) { f.FirstName = " " }, "firstName"},
	}
	for _, tc := range cases {
		api := &fakeAPI{}
		svc := newTestService(api, session.NewStore())
		form := validSignup()
		tc.edit(&form)

		fe, ok := validation.AsFieldErrors(svc.Register(context.Background(), form))
		if !ok || fe[tc.field] == "" {
			t.Fatalf("%s: expected %s error, got %v", tc.name, tc.field, fe)
		}
		if len(api.registered) != 0 {
			t.Fatalf("%s: expected no backend call", tc.name)
		}
	}
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(api, session.NewStore())

	_, err := svc.UpdateProfile(context.Background(), ProfileForm{FirstName: "Ann", LastName: "Cruz"})
	if !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if api.renames != 0 {
		t.Fatalf("expected no backend call")
	}
}

func TestUpdateProfileRefreshesSession(t *testing.T) {
	store := session.NewStore()
	store.Begin(models.User{ID: "u1", FirstName: "Ana", LastName: "Cruz", Email: "ana@shop.ph"})
	api := &fakeAPI{updated: models.User{ID: "u1", FirstName: "Ann", LastName: "Santos"}}
	svc := newTestService(api, store)

	user, err := svc.UpdateProfile(context.Background(), ProfileForm{FirstName: "Ann", LastName: "Santos"})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if user.Email != "ana@shop.ph" || user.LastName != "Santos" {
		t.Fatalf("unexpected user: %+v", user)
	}
	current, _ := store.Current()
	if current.FirstName != "Ann" || current.LastName != "Santos" {
		t.Fatalf("session not refreshed: %+v", current)
	}

	if _, err := svc.UpdateProfile(context.Background(), ProfileForm{FirstName: "", LastName: "x"}); err == nil {
		t.Fatalf("expected validation error")
	}
}
