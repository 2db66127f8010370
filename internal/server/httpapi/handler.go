package httpapi

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/logingate/internal/common"
	"github.com/dmitrijs2005/logingate/internal/credentials"
	"github.com/dmitrijs2005/logingate/internal/server/services"
)

type loginResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Token        string `json:"token,omitempty"`
	ExpiresAt    string `json:"expiresAt,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// handleLogin implements POST /login: JSON {email, password, rememberMe} in,
// the result envelope out. Which field failed validation is never disclosed,
// and neither is whether the account exists.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	key := clientKey(r)
	if d := s.limiter.Allow(key, s.rateLimit, s.rateWindow); !d.allowed {
		retry := int(time.Until(d.windowEnd).Seconds()) + 1
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		return
	}

	var in credentials.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{Success: false, Message: services.MsgInvalidInput})
		return
	}

	result, session, err := s.auth.Login(r.Context(), in)
	if err != nil {
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !result.Success {
		status := http.StatusUnauthorized
		if result.Message == services.MsgInvalidInput {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, loginResponse{Success: false, Message: result.Message})
		return
	}

	s.logger.Info(r.Context(), "login successful", "email", in.Email)
	writeJSON(w, http.StatusOK, loginResponse{
		Success:      true,
		Message:      result.Message,
		Token:        session.AccessToken,
		ExpiresAt:    session.ExpiresAt.UTC().Format(time.RFC3339),
		RefreshToken: session.RefreshToken,
	})
}

// handleRegister implements POST /register. Unlike login, validation failures
// here do include the per-field messages: the submitter already knows their
// own input, so nothing leaks.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentials.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, services.MsgInvalidInput)
		return
	}

	user, err := s.auth.Register(r.Context(), in)
	if err != nil {
		var fieldErrs credentials.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": services.MsgInvalidInput,
				"errors":  fieldErrs,
			})
		case errors.Is(err, common.ErrRegistrationDisabled):
			writeError(w, http.StatusForbidden, "registration is disabled")
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusConflict, "account already exists")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.logger.Info(r.Context(), "registered", "email", user.Email)
	writeJSON(w, http.StatusCreated, map[string]any{"id": user.ID, "email": user.Email})
}

// handleRefresh implements POST /refresh: rotate a refresh token.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	session, err := s.auth.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			writeError(w, http.StatusUnauthorized, "invalid or expired refresh token")
			return
		}
		s.logger.Error(r.Context(), "refresh failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success:      true,
		Message:      "Token refreshed.",
		Token:        session.AccessToken,
		ExpiresAt:    session.ExpiresAt.UTC().Format(time.RFC3339),
		RefreshToken: session.RefreshToken,
	})
}

// handleLogout implements POST /logout: revoke a refresh token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	if err := s.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		s.logger.Error(r.Context(), "logout failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// clientKey identifies the caller for rate limiting. The RealIP middleware
// has already rewritten RemoteAddr when a trusted proxy header is present.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
