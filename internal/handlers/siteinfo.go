package handlers

import (
	"net/http"

	"shopdesk/internal/httpx"
	"shopdesk/internal/siteinfo"
	"shopdesk/internal/transport"
)

func (s *Server) GetAbout(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	about, err := s.SiteInfo.About(r.Context())
	if err != nil {
		writeError(w, log, "about get", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, about)
}

func (s *Server) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req siteinfo.AboutForm
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("about update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	about, err := s.SiteInfo.UpdateAbout(r.Context(), req)
	if err != nil {
		writeError(w, log, "about update", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, about)
}

func (s *Server) GetContact(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	contact, err := s.SiteInfo.Contact(r.Context())
	if err != nil {
		writeError(w, log, "contact get", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, contact)
}

func (s *Server) UpdateContact(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req siteinfo.ContactForm
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	contact, err := s.SiteInfo.UpdateContact(r.Context(), req)
	if err != nil {
		writeError(w, log, "contact update", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, contact)
}

func (s *Server) ListFeedback(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	items, err := s.SiteInfo.Feedback(r.Context())
	if err != nil {
		writeError(w, log, "feedback list", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, nonNil(items))
}
