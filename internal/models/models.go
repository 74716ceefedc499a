package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentAccepted  AppointmentStatus = "accepted"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentFinished  AppointmentStatus = "finished"
)

// AppointmentStatuses lists the statuses in tab order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentPending,
	AppointmentAccepted,
	AppointmentCancelled,
	AppointmentFinished,
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentAccepted, AppointmentCancelled, AppointmentFinished:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectOngoing  ProjectStatus = "ongoing"
	ProjectFinished ProjectStatus = "finished"
)

var ProjectStatuses = []ProjectStatus{ProjectOngoing, ProjectFinished}

func (s ProjectStatus) Valid() bool {
	return s == ProjectOngoing || s == ProjectFinished
}

type ProductType string

const (
	ProductGlass        ProductType = "glass"
	ProductFrame        ProductType = "frame"
	ProductCompleteUnit ProductType = "completeunit"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductGlass, ProductFrame, ProductCompleteUnit:
		return true
	}
	return false
}

type Appointment struct {
	ID            string            `json:"_id"`
	Name          string            `json:"name"`
	Service       string            `json:"service"`
	Email         string            `json:"email,omitempty"`
	ContactNumber string            `json:"contactNumber"`
	Address       string            `json:"address"`
	PreferredDate string            `json:"preferredDate"`
	PreferredTime string            `json:"preferredTime,omitempty"`
	Note          string            `json:"note,omitempty"`
	Contacted     bool              `json:"contacted"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type Task struct {
	ID   string `json:"id"`
	Task string `json:"task"`
}

type Project struct {
	ID            string        `json:"_id,omitempty"`
	Title         string        `json:"title"`
	Name          string        `json:"name"`
	Service       string        `json:"service"`
	Email         string        `json:"email"`
	ContactNumber string        `json:"contactNumber"`
	Address       string        `json:"address"`
	ExpectedDate  string        `json:"expectedDate"`
	Status        ProjectStatus `json:"status"`
	Tasks         []Task        `json:"tasks,omitempty"`
	CreatedAt     time.Time     `json:"createdAt,omitempty"`
}

type Product struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        ProductType `json:"type"`
	Image       string      `json:"image"`
}

type Service struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Image       string `json:"image"`
}

// Price is stored by the backend either as a number or as the raw text the
// staff typed. It always decodes to its textual form.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = Price(n.String())
	return nil
}

type Image struct {
	ID       string `json:"_id"`
	Image    string `json:"image"`
	Featured bool   `json:"featured"`
}

type Feedback struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type About struct {
	ID          string `json:"_id"`
	Description string `json:"description"`
}

type Contact struct {
	ID            string `json:"_id"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	FbLink        string `json:"fbLink"`
}

type UserEmail struct {
	Email string `json:"email"`
}

// Prompt is a confirmation shown before a destructive or state-changing call.
type Prompt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
