package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/cryptolens/cryptolens/internal/middleware"
	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/response"
)

// recordActivityHandler records an analytics event. Recording is best
// effort; storage failures are logged but still acknowledged.
func (s *Server) recordActivityHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req struct {
		Type      string            `json:"activity_type"`
		ArticleID string            `json:"article_id"`
		Metadata  map[string]string `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if req.Type == "" {
		response.WriteBadRequest(w, "activity_type is required")
		return
	}

	err := s.activity.Record(r.Context(), model.Activity{
		UserID:    userID,
		Type:      req.Type,
		ArticleID: req.ArticleID,
		Metadata:  req.Metadata,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Error recording activity for %s: %v", userID, err)
	}

	response.WriteSuccess(w, "Activity recorded", nil)
}
