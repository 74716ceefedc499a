package appointments

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
	"shopdesk/internal/validation"
)

type statusCall struct {
	id     string
	status models.AppointmentStatus
}

type fakeAPI struct {
	mu        sync.Mutex
	items     []models.Appointment
	listErr   error
	updateErr error
	createErr error
	updates   []statusCall
	toggles   []string
	projects  []backend.NewProject
	block     chan struct{}
}

func (f *fakeAPI) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return f.items, f.listErr
}

func (f *fakeAPI) AppointmentsByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Appointment
	for _, a := range f.items {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAPI) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, statusCall{id, status})
	return f.updateErr
}

func (f *fakeAPI) ToggleContacted(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles = append(f.toggles, id)
	return nil
}

func (f *fakeAPI) CreateProject(ctx context.Context, p backend.NewProject) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, p)
	return f.createErr
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, api API) *Service {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(api, validation.New(), loc, log).WithClock(func() time.Time { return testNow })
}

func validConversion() Conversion {
	return Conversion{
		Title:         "Kitchen window",
		Name:          "Ana Cruz",
		Service:       "Glass install",
		ContactNumber: "09171234567",
		Address:       "12 Mabini St",
		ExpectedDate:  "2025-04-01",
	}
}

func TestAcceptSendsAccepted(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(t, api)

	if err := svc.Accept(context.Background(), models.Appointment{ID: "a1", Status: models.AppointmentPending}); err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if len(api.updates) != 1 || api.updates[0] != (statusCall{"a1", models.AppointmentAccepted}) {
		t.Fatalf("unexpected updates: %+v", api.updates)
	}
}

func TestRevertSendsPending(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(t, api)

	if err := svc.Revert(context.Background(), models.Appointment{ID: "a3", Status: models.AppointmentCancelled}); err != nil {
		t.Fatalf("Revert error: %v", err)
	}
	if len(api.updates) != 1 || api.updates[0].status != models.AppointmentPending {
		t.Fatalf("unexpected updates: %+v", api.updates)
	}
}

func TestIllegalTransitionSendsNothing(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(t, api)

	err := svc.Finish(context.Background(), models.Appointment{ID: "a1", Status: models.AppointmentPending})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(api.updates) != 0 {
		t.Fatalf("expected no backend call, got %+v", api.updates)
	}
}

func TestApplyPropagatesBackendError(t *testing.T) {
	api := &fakeAPI{updateErr: errors.New("boom")}
	svc := newTestService(t, api)

	err := svc.Cancel(context.Background(), models.Appointment{ID: "a1", Status: models.AppointmentPending})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestApplyRejectsDuplicateInFlight(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{})}
	svc := newTestService(t, api)
	appt := models.Appointment{ID: "a1", Status: models.AppointmentPending}

	done := make(chan error, 1)
	go func() { done <- svc.Accept(context.Background(), appt) }()

	// Wait for the first call to hold the guard.
	deadline := time.Now().Add(2 * time.Second)
	for {
		svc.mu.Lock()
		_, held := svc.inflight["accept:a1"]
		svc.mu.Unlock()
		if held {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first call never started")
		}
		time.Sleep(time.Millisecond)
	}

	if err := svc.Accept(context.Background(), appt); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(api.block)
	if err := <-done; err != nil {
		t.Fatalf("first Accept error: %v", err)
	}
	if len(api.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(api.updates))
	}
	if err := svc.Accept(context.Background(), appt); err != nil {
		t.Fatalf("Accept after release error: %v", err)
	}
}

func TestToggleContacted(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(t, api)

	if err := svc.ToggleContacted(context.Background(), models.Appointment{ID: "a1", Status: models.AppointmentAccepted}); err != nil {
		t.Fatalf("ToggleContacted error: %v", err)
	}
	err := svc.ToggleContacted(context.Background(), models.Appointment{ID: "a2", Status: models.AppointmentFinished})
	if !errors.Is(err, ErrContactedLocked) {
		t.Fatalf("expected ErrContactedLocked, got %v", err)
	}
	if len(api.toggles) != 1 || api.toggles[0] != "a1" {
		t.Fatalf("unexpected toggles: %v", api.toggles)
	}
	if len(api.updates) != 0 {
		t.Fatalf("contacted toggle must not change status")
	}
}

func TestListSwallowsFailures(t *testing.T) {
	for _, listErr := range []error{backend.ErrNoResults, errors.New("network down")} {
		svc := newTestService(t, &fakeAPI{listErr: listErr})
		got := svc.List(context.Background(), models.AppointmentPending)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil list for %v, got %#v", listErr, got)
		}
	}
}

func TestListFiltersByStatus(t *testing.T) {
	api := &fakeAPI{items: []models.Appointment{
		{ID: "a1", Status: models.AppointmentPending},
		{ID: "a2", Status: models.AppointmentAccepted},
	}}
	svc := newTestService(t, api)

	got := svc.List(context.Background(), models.AppointmentAccepted)
	if len(got) != 1 || got[0].ID != "a2" {
		t.Fatalf("unexpected list: %+v", got)
	}
	if got := svc.List(context.Background(), "archived"); len(got) != 0 {
		t.Fatalf("invalid status should give empty list")
	}
}

func TestFind(t *testing.T) {
	api := &fakeAPI{items: []models.Appointment{{ID: "a1"}, {ID: "a2"}}}
	svc := newTestService(t, api)

	a, err := svc.Find(context.Background(), "a2")
	if err != nil || a.ID != "a2" {
		t.Fatalf("Find = %+v, %v", a, err)
	}
	if _, err := svc.Find(context.Background(), "zz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFinishAndConvert(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(t, api)
	appt := models.Appointment{ID: "a2", Name: "Ana Cruz", Status: models.AppointmentAccepted}

	c := validConversion()
	task, ok := c.AddTask("  measure frame ")
	if !ok || task.ID == "" || task.Task != "measure frame" {
		t.Fatalf("AddTask = %+v, %v", task, ok)
	}
	if _, ok := c.AddTask("   "); ok {
		t.Fatalf("blank task should be ignored")
	}

	if err := svc.FinishAndConvert(context.Background(), appt, c); err != nil {
		t.Fatalf("FinishAndConvert error: %v", err)
	}
	if len(api.updates) != 1 || api.updates[0] != (statusCall{"a2", models.AppointmentFinished}) {
		t.Fatalf("unexpected updates: %+v", api.updates)
	}
	if len(api.projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(api.projects))
	}
	p := api.projects[0]
	if p.Status != models.ProjectOngoing || p.Title != "Kitchen window" || p.ExpectedDate != "2025-04-01" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if len(p.Tasks) != 1 || p.Tasks[0].ID != task.ID {
		t.Fatalf("unexpected tasks: %+v", p.Tasks)
	}
}

func TestFinishAndConvertRejectsInvalidForm(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*Conversion)
		field string
	}{
		{"empty title", func(c *Conversion) { c.Title = "" }, "title"},
		{"blank address", func(c *Conversion) { c.Address = "   " }, "address"},
		{"missing date", func(c *Conversion) { c.ExpectedDate = "" }, "expectedDate"},
		{"bad date", func(c *Conversion) { c.ExpectedDate = "04/01/2025" }, "expectedDate"},
		{"today", func(c *Conversion) { c.ExpectedDate = "2025-03-10" }, "expectedDate"},
	}
	for _, tc := range cases {
		api := &fakeAPI{}
		svc := newTestService(t, api)
		c := validConversion()
		tc.edit(&c)

		err := svc.FinishAndConvert(context.Background(), models.Appointment{ID: "a2", Status: models.AppointmentAccepted}, c)
		fe, ok := validation.AsFieldErrors(err)
		if !ok {
			t.Fatalf("%s: expected field errors, got %v", tc.name, err)
		}
		if _, ok := fe[tc.field]; !ok {
			t.Fatalf("%s: expected %s error, got %v", tc.name, tc.field, fe)
		}
		if len(api.updates) != 0 || len(api.projects) != 0 {
			t.Fatalf("%s: expected no backend calls", tc.name)
		}
	}
}

func TestConversionAllowsPastDate(t *testing.T) {
	svc := newTestService(t, &fakeAPI{})
	c := validConversion()
	c.ExpectedDate = "2024-12-01"
	if err := svc.ValidateConversion(c); err != nil {
		t.Fatalf("past date should pass, got %v", err)
	}
}

func TestConversionTodayMessage(t *testing.T) {
	svc := newTestService(t, &fakeAPI{})
	c := validConversion()
	c.ExpectedDate = "2025-03-10"
	fe, _ := validation.AsFieldErrors(svc.ValidateConversion(c))
	if fe["expectedDate"] != "Expected completion date cannot be today." {
		t.Fatalf("unexpected message: %q", fe["expectedDate"])
	}
}

func TestFinishAndConvertNotTransactional(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("insert failed")}
	svc := newTestService(t, api)

	err := svc.FinishAndConvert(context.Background(), models.Appointment{ID: "a2", Status: models.AppointmentAccepted}, validConversion())
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if ce.AppointmentID != "a2" || !ce.StatusUpdated || ce.Unwrap().Error() != "insert failed" {
		t.Fatalf("unexpected error: %+v", ce)
	}
	if len(api.updates) != 1 || api.updates[0].status != models.AppointmentFinished {
		t.Fatalf("status update should stay applied, got %+v", api.updates)
	}
}

func TestFinishAndConvertRequiresAccepted(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(t, api)

	err := svc.FinishAndConvert(context.Background(), models.Appointment{ID: "a1", Status: models.AppointmentPending}, validConversion())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(api.updates) != 0 {
		t.Fatalf("expected no backend call")
	}
}

func TestNewConversionCopiesClientFields(t *testing.T) {
	c := NewConversion(models.Appointment{Name: "Ana", Service: "Glass", ContactNumber: "0917", Address: "Mabini", Email: "a@b.c"})
	if c.Name != "Ana" || c.Service != "Glass" || c.Address != "Mabini" || c.Title != "" {
		t.Fatalf("unexpected conversion: %+v", c)
	}
	c.AddTask("one")
	task, _ := c.AddTask("two")
	c.RemoveTask(task.ID)
	if len(c.Tasks) != 1 || c.Tasks[0].Task != "one" {
		t.Fatalf("RemoveTask left %+v", c.Tasks)
	}
}
