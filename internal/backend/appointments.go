package backend

import (
	"context"
	"net/http"

	"shopdesk/internal/models"
)

func (c *Client) Appointments(ctx context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := c.doJSON(ctx, http.MethodGet, "appointment", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AppointmentsByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	return listByStatus[models.Appointment](ctx, c, "appointment/"+segment(string(status)), "No appointments found")
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	payload := map[string]models.AppointmentStatus{"status": status}
	return c.doJSON(ctx, http.MethodPut, "appointment/"+segment(id), payload, nil)
}

func (c *Client) ToggleContacted(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPut, "appointmentcontacted/"+segment(id), nil, nil)
}

func (c *Client) ToggleFinished(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPut, "appointmentfinished/"+segment(id), nil, nil)
}
