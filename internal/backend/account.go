package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"shopdesk/internal/models"
)

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginResponse struct {
	User models.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, req SignupRequest) error {
	return c.doJSON(ctx, http.MethodPost, "signup", req, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "login", payload, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id, firstName, lastName string) (models.User, error) {
	var out models.User
	payload := map[string]string{"firstName": firstName, "lastName": lastName}
	if err := c.doJSON(ctx, http.MethodPut, "updateuser/"+segment(id), payload, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) UserEmails(ctx context.Context) ([]models.UserEmail, error) {
	var out []models.UserEmail
	if err := c.doJSON(ctx, http.MethodGet, "getuseremails", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendOTP asks the backend to mail code to email. The code is sent as a
// number, the way the backend template expects it.
func (c *Client) SendOTP(ctx context.Context, email, code string) error {
	payload := struct {
		ToEmail string      `json:"to_email"`
		OTP     json.Number `json:"otp"`
	}{ToEmail: email, OTP: json.Number(code)}
	return c.doJSON(ctx, http.MethodPost, "emailotp", payload, nil)
}

func (c *Client) UpdateUserPassword(ctx context.Context, email, newPassword string) error {
	payload := map[string]string{"newPassword": newPassword}
	return c.doJSON(ctx, http.MethodPut, "updateuserpass/"+segment(email), payload, nil)
}
