package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"shopdesk/internal/transport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	summary, err := s.Stats.Summary(r.Context())
	if err != nil {
		writeError(w, log, "stats summary", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, summary)
}

// ExportStats streams the statistics workbook. It is rendered into memory
// first so a failure can still be reported as JSON.
func (s *Server) ExportStats(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var buf bytes.Buffer
	if err := s.Stats.Export(r.Context(), &buf); err != nil {
		writeError(w, log, "stats export", err)
		return
	}
	transport.WriteAttachment(w, xlsxContentType, "shopdesk-stats.xlsx")
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("stats export: write failed", slog.String("error", err.Error()))
	}
}
