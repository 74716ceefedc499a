package appointments

import (
	"errors"
	"strings"

	"shopdesk/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid appointment status transition")
	ErrInvalidAction     = errors.New("invalid appointment action")
	ErrInvalidStatus     = errors.New("invalid appointment status")
)

type Action string

const (
	Accept Action = "accept"
	Cancel Action = "cancel"
	Finish Action = "finish"
	Revert Action = "revert"
)

var transitions = map[models.AppointmentStatus]map[Action]models.AppointmentStatus{
	models.AppointmentPending: {
		Accept: models.AppointmentAccepted,
		Cancel: models.AppointmentCancelled,
	},
	models.AppointmentAccepted: {
		Finish: models.AppointmentFinished,
	},
	models.AppointmentCancelled: {
		Revert: models.AppointmentPending,
	},
}

// Next returns the status an appointment moves to when action is applied in
// status from.
func Next(from models.AppointmentStatus, action Action) (models.AppointmentStatus, error) {
	to, ok := transitions[from][action]
	if !ok {
		return "", ErrInvalidTransition
	}
	return to, nil
}

// Actions lists the actions available from status, in display order.
func Actions(from models.AppointmentStatus) []Action {
	out := make([]Action, 0, 2)
	for _, a := range []Action{Accept, Cancel, Finish, Revert} {
		if _, ok := transitions[from][a]; ok {
			out = append(out, a)
		}
	}
	return out
}

func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case Accept, Cancel, Finish, Revert:
		return a, nil
	}
	return "", ErrInvalidAction
}

func ParseStatus(s string) (models.AppointmentStatus, error) {
	st := models.AppointmentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// FollowTab is the tab the list switches to once action succeeds.
func FollowTab(action Action) models.AppointmentStatus {
	switch action {
	case Accept:
		return models.AppointmentAccepted
	case Cancel:
		return models.AppointmentCancelled
	case Revert:
		return models.AppointmentPending
	}
	return models.AppointmentAccepted
}

// CanToggleContacted reports whether the contacted flag is editable.
func CanToggleContacted(status models.AppointmentStatus) bool {
	return status == models.AppointmentPending || status == models.AppointmentAccepted
}

// PromptFor is the confirmation shown before action is sent.
func PromptFor(action Action) models.Prompt {
	switch action {
	case Accept:
		return models.Prompt{Title: "Accept Appointment", Message: "Are you sure you want to accept this appointment?"}
	case Cancel:
		return models.Prompt{Title: "Cancel Appointment", Message: "Are you sure you want to cancel this appointment?"}
	case Finish:
		return models.Prompt{Title: "Finish Appointment", Message: "Are you sure you want to finish this appointment?"}
	case Revert:
		return models.Prompt{Title: "Revert to Pending", Message: "Are you sure you want to revert this appointment to pending?"}
	}
	return models.Prompt{}
}
