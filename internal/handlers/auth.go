package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cryptolens/cryptolens/internal/middleware"
	"github.com/cryptolens/cryptolens/internal/response"
	"github.com/cryptolens/cryptolens/internal/service"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signupHandler registers a new account and returns a session token.
func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	session, err := s.accounts.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.WriteConflict(w, "Email already registered")
		case errors.Is(err, service.ErrWeakPassword):
			response.WriteBadRequest(w, err.Error())
		default:
			response.WriteBadRequest(w, err.Error())
		}
		return
	}

	response.WriteCreated(w, "Account created", session)
}

// loginHandler verifies credentials and returns a session token.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	session, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.WriteUnauthorized(w, "Invalid email or password")
			return
		}
		log.Printf("Error logging in %s: %v", req.Email, err)
		response.WriteInternalError(w, "Login failed")
		return
	}

	response.WriteSuccess(w, "Logged in", session)
}

// resetRequestHandler starts a password reset. The response is identical
// for known and unknown emails.
func (s *Server) resetRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	token, err := s.accounts.RequestReset(r.Context(), req.Email)
	if err != nil {
		log.Printf("Error requesting reset for %s: %v", req.Email, err)
		response.WriteInternalError(w, "Reset request failed")
		return
	}
	if token != "" {
		// Token delivery goes through email in production. It is logged
		// here until a mailer is wired up.
		log.Printf("🔑 Password reset token for %s: %s", req.Email, token)
	}

	response.WriteSuccess(w, "If the email exists, a reset link has been sent", nil)
}

// resetConfirmHandler completes a password reset with a token.
func (s *Server) resetConfirmHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	if err := s.accounts.ConfirmReset(r.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			response.WriteBadRequest(w, "Invalid or expired reset token")
		case errors.Is(err, service.ErrWeakPassword):
			response.WriteBadRequest(w, err.Error())
		default:
			log.Printf("Error confirming reset: %v", err)
			response.WriteInternalError(w, "Reset failed")
		}
		return
	}

	response.WriteSuccess(w, "Password updated", nil)
}

// meHandler returns the authenticated account.
func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.accounts.GetUser(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		response.WriteNotFound(w, "Account not found")
		return
	}
	response.WriteSuccess(w, "", user)
}

// changePasswordHandler changes the password for the authenticated user.
func (s *Server) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	err := s.accounts.UpdatePassword(r.Context(), middleware.UserID(r.Context()), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.WriteUnauthorized(w, "Current password is incorrect")
		case errors.Is(err, service.ErrWeakPassword):
			response.WriteBadRequest(w, err.Error())
		default:
			log.Printf("Error changing password: %v", err)
			response.WriteInternalError(w, "Password change failed")
		}
		return
	}

	response.WriteSuccess(w, "Password updated", nil)
}
