package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shopdesk/internal/httpx"
	"shopdesk/internal/models"
	"shopdesk/internal/projects"
	"shopdesk/internal/schedule"
	"shopdesk/internal/transport"
)

type projectItem struct {
	models.Project
	CreatedDisplay string `json:"createdDisplay"`
}

type projectListResponse struct {
	Tab   string        `json:"tab"`
	Query string        `json:"query"`
	Items []projectItem `json:"items"`
}

func (s *Server) projectItem(p models.Project) projectItem {
	item := projectItem{Project: p}
	if !p.CreatedAt.IsZero() {
		item.CreatedDisplay = schedule.FormatLong(p.CreatedAt, s.Cfg.Timezone)
	}
	return item
}

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status, err := projects.ParseStatus(raw)
		if err != nil {
			log.Warn("projects list: invalid status", slog.String("status", raw))
			writeError(w, log, "projects list", err)
			return
		}
		if string(status) != s.ProjectView.Tab() {
			s.ProjectView.SelectTab(r.Context(), string(status))
		} else {
			s.ProjectView.Refresh(r.Context())
		}
	} else {
		s.ProjectView.Refresh(r.Context())
	}
	if q.Has("q") {
		s.ProjectView.Search(q.Get("q"))
	}

	visible := s.ProjectView.Visible()
	resp := projectListResponse{
		Tab:   s.ProjectView.Tab(),
		Query: s.ProjectView.Query(),
		Items: make([]projectItem, 0, len(visible)),
	}
	for _, p := range visible {
		resp.Items = append(resp.Items, s.projectItem(p))
	}
	transport.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	p, err := s.Projects.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, "projects get", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, s.projectItem(p))
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")

	var req projects.Update
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("projects update: invalid json", slog.String("project_id", id))
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Projects.Update(r.Context(), id, req); err != nil {
		writeError(w, log, "projects update", err)
		return
	}
	s.ProjectView.Refresh(r.Context())
	transport.WriteOK(w, s.ProjectView.Tab())
}

func (s *Server) CompleteProject(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if err := s.Projects.Complete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, log, "projects complete", err)
		return
	}
	s.ProjectView.Refresh(r.Context())
	transport.WriteOK(w, s.ProjectView.Tab())
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if !requireConfirmation(w, confirmedByQuery(r), projects.DeletePrompt()) {
		return
	}
	if err := s.Projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, log, "projects delete", err)
		return
	}
	s.ProjectView.Refresh(r.Context())
	transport.WriteOK(w, s.ProjectView.Tab())
}
