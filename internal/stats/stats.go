// Package stats counts appointments per status and exports them as an XLSX
// workbook.
package stats

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"shopdesk/internal/models"
	"shopdesk/internal/schedule"
)

const (
	SummarySheet      = "Summary"
	AppointmentsSheet = "Appointments"
)

var appointmentHeaders = []string{
	"Name", "Service", "Email", "Contact Number", "Address",
	"Preferred Date", "Preferred Time", "Status", "Contacted", "Created",
}

type API interface {
	Appointments(ctx context.Context) ([]models.Appointment, error)
	Feedback(ctx context.Context) ([]models.Feedback, error)
}

type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Cancelled int `json:"cancelled"`
	Finished  int `json:"finished"`
	Feedback  int `json:"feedback"`
}

// Count returns the number of appointments in status.
func (s Summary) Count(status models.AppointmentStatus) int {
	switch status {
	case models.AppointmentPending:
		return s.Pending
	case models.AppointmentAccepted:
		return s.Accepted
	case models.AppointmentCancelled:
		return s.Cancelled
	case models.AppointmentFinished:
		return s.Finished
	}
	return 0
}

func Summarize(appts []models.Appointment, feedback int) Summary {
	out := Summary{Total: len(appts), Feedback: feedback}
	for _, a := range appts {
		switch a.Status {
		case models.AppointmentPending:
			out.Pending++
		case models.AppointmentAccepted:
			out.Accepted++
		case models.AppointmentCancelled:
			out.Cancelled++
		case models.AppointmentFinished:
			out.Finished++
		}
	}
	return out
}

// Report is a summary together with the appointments it was computed from.
type Report struct {
	Summary      Summary
	Appointments []models.Appointment
	GeneratedAt  time.Time
}

type Service struct {
	api      API
	location *time.Location
	log      *slog.Logger
	now      func() time.Time
}

func NewService(api API, location *time.Location, log *slog.Logger) *Service {
	return &Service{api: api, location: location, log: log, now: time.Now}
}

func (s *Service) Collect(ctx context.Context) (Report, error) {
	appts, err := s.api.Appointments(ctx)
	if err != nil {
		s.log.Error("stats collect: appointments failed", slog.String("error", err.Error()))
		return Report{}, err
	}
	feedback, err := s.api.Feedback(ctx)
	if err != nil {
		s.log.Error("stats collect: feedback failed", slog.String("error", err.Error()))
		return Report{}, err
	}
	return Report{
		Summary:      Summarize(appts, len(feedback)),
		Appointments: appts,
		GeneratedAt:  s.now(),
	}, nil
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	r, err := s.Collect(ctx)
	if err != nil {
		return Summary{}, err
	}
	return r.Summary, nil
}

// Export collects a fresh report and writes it to w as XLSX.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	r, err := s.Collect(ctx)
	if err != nil {
		return err
	}
	if err := WriteWorkbook(w, r, s.location); err != nil {
		s.log.Error("stats export: write failed", slog.String("error", err.Error()))
		return err
	}
	s.log.Info("stats export: ok", slog.Int("appointments", len(r.Appointments)))
	return nil
}

// WriteWorkbook renders r into a two-sheet workbook: per-status counts and
// one row per appointment.
func WriteWorkbook(w io.Writer, r Report, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Metric", "Count"},
		{"Pending", r.Summary.Pending},
		{"Accepted", r.Summary.Accepted},
		{"Cancelled", r.Summary.Cancelled},
		{"Finished", r.Summary.Finished},
		{"Total appointments", r.Summary.Total},
		{"Feedback", r.Summary.Feedback},
		{"Generated", schedule.FormatLong(r.GeneratedAt, loc)},
	}
	if err := writeRows(f, SummarySheet, summaryRows); err != nil {
		return err
	}

	if _, err := f.NewSheet(AppointmentsSheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	rows := make([][]interface{}, 0, len(r.Appointments)+1)
	header := make([]interface{}, len(appointmentHeaders))
	for i, h := range appointmentHeaders {
		header[i] = h
	}
	rows = append(rows, header)
	for _, a := range r.Appointments {
		rows = append(rows, []interface{}{
			a.Name,
			a.Service,
			a.Email,
			a.ContactNumber,
			a.Address,
			schedule.FormatShort(a.PreferredDate, loc),
			a.PreferredTime,
			string(a.Status),
			a.Contacted,
			schedule.FormatLong(a.CreatedAt, loc),
		})
	}
	if err := writeRows(f, AppointmentsSheet, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to set cell value: %w", err)
			}
		}
	}
	return nil
}
