package stats

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"shopdesk/internal/models"
)

type fakeAPI struct {
	appts    []models.Appointment
	feedback []models.Feedback
	err      error
}

func (f *fakeAPI) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return f.appts, f.err
}

func (f *fakeAPI) Feedback(ctx context.Context) ([]models.Feedback, error) {
	return f.feedback, nil
}

func sample() *fakeAPI {
	return &fakeAPI{
		appts: []models.Appointment{
			{Name: "Ana", Status: models.AppointmentPending, PreferredDate: "2025-03-10"},
			{Name: "Ben", Status: models.AppointmentPending},
			{Name: "Cai", Status: models.AppointmentAccepted, Contacted: true},
			{Name: "Dan", Status: models.AppointmentCancelled},
			{Name: "Eve", Status: models.AppointmentFinished},
		},
		feedback: []models.Feedback{{ID: "f1"}, {ID: "f2"}},
	}
}

func newTestService(api API) *Service {
	return NewService(api, time.UTC, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample().appts, 2)
	if s.Total != 5 || s.Pending != 2 || s.Accepted != 1 || s.Cancelled != 1 || s.Finished != 1 || s.Feedback != 2 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.Count(models.AppointmentPending) != 2 {
		t.Fatalf("Count(pending) = %d", s.Count(models.AppointmentPending))
	}
}

func TestSummaryPropagatesErrors(t *testing.T) {
	svc := newTestService(&fakeAPI{err: errors.New("down")})
	if _, err := svc.Summary(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestExportWorkbook(t *testing.T) {
	svc := newTestService(sample())

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), &buf); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader error: %v", err)
	}
	defer f.Close()

	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows(summary) error: %v", err)
	}
	if summary[1][0] != "Pending" || summary[1][1] != "2" {
		t.Fatalf("unexpected summary row: %v", summary[1])
	}

	rows, err := f.GetRows(AppointmentsSheet)
	if err != nil {
		t.Fatalf("GetRows(appointments) error: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected header plus 5 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[1][0] != "Ana" || rows[1][5] != "3/10/2025" {
		t.Fatalf("unexpected rows: %v", rows[:2])
	}
}
