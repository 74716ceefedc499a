package handlers

import (
	"net/http"

	"shopdesk/internal/httpx"
	"shopdesk/internal/recovery"
	"shopdesk/internal/transport"
)

type recoveryStateResponse struct {
	Step            recovery.Step `json:"step"`
	Email           string        `json:"email,omitempty"`
	CodeSent        bool          `json:"codeSent"`
	CooldownSeconds int           `json:"cooldownSeconds"`
	CancelTitle     string        `json:"cancelTitle"`
	CancelMessage   string        `json:"cancelMessage"`
}

func (s *Server) writeRecoveryState(w http.ResponseWriter) {
	st := s.Recovery.State()
	prompt := recovery.CancelPrompt()
	transport.WriteJSON(w, http.StatusOK, recoveryStateResponse{
		Step:            st.Step,
		Email:           st.Email,
		CodeSent:        st.CodeSent,
		CooldownSeconds: int(st.CooldownRemaining.Seconds() + 0.999),
		CancelTitle:     prompt.Title,
		CancelMessage:   prompt.Message,
	})
}

func (s *Server) RecoveryState(w http.ResponseWriter, r *http.Request) {
	s.writeRecoveryState(w)
}

type recoveryEmailRequest struct {
	Email string `json:"email"`
}

func (s *Server) RecoverySubmitEmail(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req recoveryEmailRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("recovery email: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Recovery.SubmitEmail(r.Context(), req.Email); err != nil {
		writeError(w, log, "recovery email", err)
		return
	}
	s.writeRecoveryState(w)
}

func (s *Server) RecoverySendCode(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if err := s.Recovery.SendCode(r.Context()); err != nil {
		writeError(w, log, "recovery send", err)
		return
	}
	s.writeRecoveryState(w)
}

type recoveryCodeRequest struct {
	Code string `json:"code"`
}

func (s *Server) RecoveryVerifyCode(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req recoveryCodeRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("recovery verify: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Recovery.VerifyCode(req.Code); err != nil {
		writeError(w, log, "recovery verify", err)
		return
	}
	s.writeRecoveryState(w)
}

type recoveryResetRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) RecoveryReset(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req recoveryResetRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("recovery reset: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Recovery.ResetPassword(r.Context(), req.Password, req.ConfirmPassword); err != nil {
		writeError(w, log, "recovery reset", err)
		return
	}
	transport.WriteOK(w, "")
}

func (s *Server) RecoveryCancel(w http.ResponseWriter, r *http.Request) {
	s.Recovery.Cancel()
	s.writeRecoveryState(w)
}
