package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shopdesk/internal/appointments"
	"shopdesk/internal/httpx"
	"shopdesk/internal/models"
	"shopdesk/internal/schedule"
	"shopdesk/internal/transport"
)

type appointmentItem struct {
	models.Appointment
	PreferredDateDisplay string                `json:"preferredDateDisplay"`
	Actions              []appointments.Action `json:"actions"`
	CanToggleContacted   bool                  `json:"canToggleContacted"`
}

type appointmentListResponse struct {
	Tab   string            `json:"tab"`
	Query string            `json:"query"`
	Items []appointmentItem `json:"items"`
}

func (s *Server) appointmentItem(a models.Appointment) appointmentItem {
	actions := appointments.Actions(a.Status)
	if actions == nil {
		actions = []appointments.Action{}
	}
	return appointmentItem{
		Appointment:          a,
		PreferredDateDisplay: schedule.FormatShort(a.PreferredDate, s.Cfg.Timezone),
		Actions:              actions,
		CanToggleContacted:   appointments.CanToggleContacted(a.Status),
	}
}

// ListAppointments drives the appointment screen. ?status= switches tab
// (clearing the search), otherwise the current tab is refetched; ?q= then
// filters what is shown.
func (s *Server) ListAppointments(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status, err := appointments.ParseStatus(raw)
		if err != nil {
			log.Warn("appointments list: invalid status", slog.String("status", raw))
			writeError(w, log, "appointments list", err)
			return
		}
		if string(status) != s.AppointmentView.Tab() {
			s.AppointmentView.SelectTab(r.Context(), string(status))
		} else {
			s.AppointmentView.Refresh(r.Context())
		}
	} else {
		s.AppointmentView.Refresh(r.Context())
	}
	if q.Has("q") {
		s.AppointmentView.Search(q.Get("q"))
	}

	visible := s.AppointmentView.Visible()
	resp := appointmentListResponse{
		Tab:   s.AppointmentView.Tab(),
		Query: s.AppointmentView.Query(),
		Items: make([]appointmentItem, 0, len(visible)),
	}
	for _, a := range visible {
		resp.Items = append(resp.Items, s.appointmentItem(a))
	}
	transport.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) GetAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	appt, err := s.Appointments.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, "appointments get", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, s.appointmentItem(appt))
}

func (s *Server) ApplyAppointmentAction(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")

	action, err := appointments.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		transport.WriteError(w, http.StatusNotFound, "not found", nil)
		return
	}

	var req confirmRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("appointments action: invalid json", slog.String("appointment_id", id))
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if !requireConfirmation(w, req.Confirm, appointments.PromptFor(action)) {
		return
	}

	appt, err := s.Appointments.Find(r.Context(), id)
	if err != nil {
		writeError(w, log, "appointments action", err)
		return
	}
	if err := s.Appointments.Apply(r.Context(), appt, action); err != nil {
		writeError(w, log, "appointments action", err)
		return
	}

	tab := appointments.FollowTab(action)
	s.AppointmentView.SelectTab(r.Context(), string(tab))
	transport.WriteOK(w, string(tab))
}

func (s *Server) ToggleContacted(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	appt, err := s.Appointments.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, "appointments contacted", err)
		return
	}
	if err := s.Appointments.ToggleContacted(r.Context(), appt); err != nil {
		writeError(w, log, "appointments contacted", err)
		return
	}
	s.AppointmentView.Refresh(r.Context())
	transport.WriteOK(w, s.AppointmentView.Tab())
}

// GetConversion returns the create-project form prefilled from the
// appointment.
func (s *Server) GetConversion(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	appt, err := s.Appointments.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, "appointments conversion", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, appointments.NewConversion(appt))
}

type convertRequest struct {
	Confirm bool `json:"confirm"`
	appointments.Conversion
	NewTasks []string `json:"newTasks"`
}

func (s *Server) ConvertAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")

	var req convertRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("appointments convert: invalid json", slog.String("appointment_id", id))
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if !requireConfirmation(w, req.Confirm, appointments.PromptFor(appointments.Finish)) {
		return
	}

	conv := req.Conversion
	for _, label := range req.NewTasks {
		conv.AddTask(label)
	}
	if err := s.Appointments.ValidateConversion(conv); err != nil {
		writeError(w, log, "appointments convert", err)
		return
	}

	appt, err := s.Appointments.Find(r.Context(), id)
	if err != nil {
		writeError(w, log, "appointments convert", err)
		return
	}
	if err := s.Appointments.FinishAndConvert(r.Context(), appt, conv); err != nil {
		writeError(w, log, "appointments convert", err)
		return
	}

	tab := appointments.FollowTab(appointments.Finish)
	s.AppointmentView.SelectTab(r.Context(), string(tab))
	transport.WriteJSON(w, http.StatusCreated, transport.StatusResponse{Status: "created", Refresh: string(tab)})
}
