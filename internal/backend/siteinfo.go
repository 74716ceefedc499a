package backend

import (
	"context"
	"net/http"

	"shopdesk/internal/models"
)

type ContactUpdate struct {
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	FbLink        string `json:"fbLink"`
}

func (c *Client) About(ctx context.Context) ([]models.About, error) {
	var out []models.About
	if err := c.doJSON(ctx, http.MethodGet, "about", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateAbout(ctx context.Context, id, description string) error {
	payload := map[string]string{"description": description}
	return c.doJSON(ctx, http.MethodPut, "about/"+segment(id), payload, nil)
}

func (c *Client) Contacts(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	if err := c.doJSON(ctx, http.MethodGet, "contacts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateContact(ctx context.Context, id string, u ContactUpdate) error {
	return c.doJSON(ctx, http.MethodPut, "updatecontact/"+segment(id), u, nil)
}

func (c *Client) Feedback(ctx context.Context) ([]models.Feedback, error) {
	var out []models.Feedback
	if err := c.doJSON(ctx, http.MethodGet, "feedback", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
