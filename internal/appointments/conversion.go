package appointments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shopdesk/internal/backend"
	"shopdesk/internal/models"
	"shopdesk/internal/schedule"
	"shopdesk/internal/validation"
)

// Conversion is the "create project" form shown when an accepted
// appointment is finished. The client fields start as a copy of the
// appointment and may be edited.
type Conversion struct {
	Title         string        `json:"title" validate:"notblank"`
	Name          string        `json:"name" validate:"notblank"`
	Service       string        `json:"service" validate:"notblank"`
	Email         string        `json:"email"`
	ContactNumber string        `json:"contactNumber" validate:"notblank"`
	Address       string        `json:"address" validate:"notblank"`
	ExpectedDate  string        `json:"expectedDate" validate:"required,date"`
	Tasks         []models.Task `json:"tasks"`
}

func NewConversion(appt models.Appointment) Conversion {
	return Conversion{
		Name:          appt.Name,
		Service:       appt.Service,
		Email:         appt.Email,
		ContactNumber: appt.ContactNumber,
		Address:       appt.Address,
	}
}

// AddTask appends a checklist entry. Blank labels are ignored.
func (c *Conversion) AddTask(label string) (models.Task, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return models.Task{}, false
	}
	task := models.Task{ID: uuid.NewString(), Task: label}
	c.Tasks = append(c.Tasks, task)
	return task, true
}

func (c *Conversion) RemoveTask(id string) {
	kept := c.Tasks[:0]
	for _, t := range c.Tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.Tasks = kept
}

// normalizedTasks drops blank entries and gives ids to tasks sent without one.
func (c Conversion) normalizedTasks() []models.Task {
	out := make([]models.Task, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		label := strings.TrimSpace(t.Task)
		if label == "" {
			continue
		}
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, models.Task{ID: id, Task: label})
	}
	return out
}

// ConversionError reports a finish-and-convert whose status update went
// through but whose project creation failed. Nothing is rolled back.
type ConversionError struct {
	AppointmentID string
	StatusUpdated bool
	Err           error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("appointment %s finished but project creation failed: %v", e.AppointmentID, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ValidateConversion checks the form. The expected date may be any valid
// date except today's.
func (s *Service) ValidateConversion(c Conversion) error {
	if err := s.val.Check(c); err != nil {
		return err
	}
	today, err := schedule.IsToday(c.ExpectedDate, s.location, s.now())
	if err != nil {
		return validation.FieldErrors{"expectedDate": "must be a date (YYYY-MM-DD)"}
	}
	if today {
		return validation.FieldErrors{"expectedDate": "Expected completion date cannot be today."}
	}
	return nil
}

// FinishAndConvert finishes an accepted appointment and creates its project.
// The two writes are independent: when the second fails the appointment
// stays finished and a *ConversionError is returned.
func (s *Service) FinishAndConvert(ctx context.Context, appt models.Appointment, c Conversion) error {
	if _, err := Next(appt.Status, Finish); err != nil {
		return err
	}
	if err := s.ValidateConversion(c); err != nil {
		s.log.Warn("appointments convert: validation error", slog.String("appointment_id", appt.ID))
		return err
	}

	release, err := s.begin("convert:" + appt.ID)
	if err != nil {
		return err
	}
	defer release()

	ctx, span := otel.Tracer("shopdesk/appointments").Start(ctx, "appointments.convert",
		trace.WithAttributes(attribute.String("appointment.id", appt.ID)),
	)
	defer span.End()

	if err := s.api.UpdateAppointmentStatus(ctx, appt.ID, models.AppointmentFinished); err != nil {
		span.RecordError(err)
		s.log.Error("appointments convert: update failed",
			slog.String("appointment_id", appt.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	project := backend.NewProject{
		Title:         strings.TrimSpace(c.Title),
		Name:          strings.TrimSpace(c.Name),
		Service:       strings.TrimSpace(c.Service),
		Email:         strings.TrimSpace(c.Email),
		ContactNumber: strings.TrimSpace(c.ContactNumber),
		Address:       strings.TrimSpace(c.Address),
		ExpectedDate:  c.ExpectedDate,
		Status:        models.ProjectOngoing,
		Tasks:         c.normalizedTasks(),
	}
	if err := s.api.CreateProject(ctx, project); err != nil {
		s.log.Error("appointments convert: project create failed",
			slog.String("appointment_id", appt.ID),
			slog.String("error", err.Error()),
		)
		span.RecordError(err)
		return &ConversionError{AppointmentID: appt.ID, StatusUpdated: true, Err: err}
	}

	s.log.Info("appointments convert: ok",
		slog.String("appointment_id", appt.ID),
		slog.String("title", project.Title),
		slog.Int("tasks", len(project.Tasks)),
	)
	return nil
}
