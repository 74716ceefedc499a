package handlers

import (
	"log/slog"
	"net/http"

	"shopdesk/internal/account"
	"shopdesk/internal/auth"
	"shopdesk/internal/httpx"
	"shopdesk/internal/middleware"
	"shopdesk/internal/session"
	"shopdesk/internal/transport"
)

func (s *Server) setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req account.SignupForm
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("account signup: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Accounts.Register(r.Context(), req); err != nil {
		writeError(w, log, "account signup", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, transport.StatusResponse{Status: "created"})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req session.LoginForm
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("session login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	user, err := s.Sessions.Login(r.Context(), req)
	if err != nil {
		writeError(w, log, "session login", err)
		return
	}
	token, err := s.Tokens.NewToken(user.ID)
	if err != nil {
		s.Sessions.Logout()
		log.Error("session login: token failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	s.setSessionCookie(w, token, int(s.Tokens.TTL.Seconds()))
	transport.WriteJSON(w, http.StatusOK, user)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Logout()
	s.setSessionCookie(w, "", -1)
	transport.WriteOK(w, "")
}

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		transport.WriteError(w, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, user)
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req account.ProfileForm
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("account profile: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	user, err := s.Accounts.UpdateProfile(r.Context(), req)
	if err != nil {
		writeError(w, log, "account profile", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, user)
}
