package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cryptolens/cryptolens/internal/middleware"
	"github.com/cryptolens/cryptolens/internal/response"
)

// feedHandler returns the personalized, relevance-ranked feed.
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	articles, err := s.feed.Feed(r.Context(), userID)
	if err != nil {
		log.Printf("Error building feed for %s: %v", userID, err)
		response.WriteInternalError(w, "Failed to build feed")
		return
	}

	response.WriteSuccess(w, "", map[string]interface{}{
		"articles": articles,
		"count":    len(articles),
	})
}

// extractKeywordsHandler extracts keywords from free text and stores them
// on the caller's profile. Both the onboarding narrative field and a plain
// text field are accepted; narrative wins when both are present.
func (s *Server) extractKeywordsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Narrative string `json:"narrative"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}
	text := req.Narrative
	if text == "" {
		text = req.Text
	}
	if text == "" {
		response.WriteBadRequest(w, `Either "narrative" or "text" field is required`)
		return
	}

	keywords, updated := s.keywords.ExtractAndStore(r.Context(), middleware.UserID(r.Context()), text)

	response.WriteSuccess(w, "", map[string]interface{}{
		"keywords":        keywords,
		"profile_updated": updated,
	})
}
