package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/cryptolens/cryptolens/internal/response"
)

// healthHandler provides health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	payload := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"version":   "v1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// statusHandler reports runtime statistics.
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	count, err := s.articles.Count(r.Context())
	if err != nil {
		log.Printf("Error counting articles: %v", err)
		response.WriteInternalError(w, "Failed to read status")
		return
	}

	response.WriteSuccess(w, "", map[string]interface{}{
		"uptime":        time.Since(s.startTime).String(),
		"article_count": count,
		"sources":       s.registry.Names(),
	})
}

// configHandler returns the non-secret configuration.
func (s *Server) configHandler(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, "", s.config)
}
