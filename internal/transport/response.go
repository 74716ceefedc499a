package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// StatusResponse acknowledges a mutation. Refresh names the list tab the
// shell should refetch, when there is one.
type StatusResponse struct {
	Status  string `json:"status"`
	Refresh string `json:"refresh,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

func WriteOK(w http.ResponseWriter, refresh string) {
	WriteJSON(w, http.StatusOK, StatusResponse{Status: "ok", Refresh: refresh})
}

// WriteAttachment sets the headers for a file download. The caller writes the
// body.
func WriteAttachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
}
