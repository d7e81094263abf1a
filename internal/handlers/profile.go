package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/cryptolens/cryptolens/internal/middleware"
	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/repository"
	"github.com/cryptolens/cryptolens/internal/response"
)

// getProfileHandler returns the caller's onboarding profile.
func (s *Server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	profile, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.WriteNotFound(w, "Profile not found")
			return
		}
		log.Printf("Error loading profile for %s: %v", userID, err)
		response.WriteInternalError(w, "Failed to load profile")
		return
	}

	response.WriteSuccess(w, "", profile)
}

// updateProfileHandler replaces the caller's profile with the request body.
// The id and email always come from the session, not the payload.
func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var profile model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	profile.ID = userID
	if existing, err := s.profiles.Get(r.Context(), userID); err == nil {
		profile.Email = existing.Email
		profile.CreatedAt = existing.CreatedAt
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Upsert(r.Context(), profile); err != nil {
		log.Printf("Error updating profile for %s: %v", userID, err)
		response.WriteInternalError(w, "Failed to update profile")
		return
	}

	response.WriteSuccess(w, "Profile updated", profile)
}
