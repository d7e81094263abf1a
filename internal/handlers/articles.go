package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cryptolens/cryptolens/internal/repository"
	"github.com/cryptolens/cryptolens/internal/response"
)

// listArticlesHandler returns recent articles without personalization.
func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	limit := s.config.FeedLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			response.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
		if n < limit {
			limit = n
		}
	}

	articles, err := s.articles.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing articles: %v", err)
		response.WriteInternalError(w, "Failed to list articles")
		return
	}

	response.WriteSuccess(w, "", map[string]interface{}{
		"articles": articles,
		"count":    len(articles),
	})
}

// getArticleHandler returns a single article by id.
func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	article, err := s.articles.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.WriteNotFound(w, "Article not found")
			return
		}
		log.Printf("Error loading article %s: %v", id, err)
		response.WriteInternalError(w, "Failed to load article")
		return
	}

	response.WriteSuccess(w, "", article)
}

// listArchivesHandler returns the names of archived fetch batches. Requires
// an archive bucket to be configured.
func (s *Server) listArchivesHandler(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		response.WriteNotFound(w, "Archiving is not configured")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			response.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
		limit = n
	}

	names, err := s.archive.List(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing archives: %v", err)
		response.WriteInternalError(w, "Failed to list archives")
		return
	}

	response.WriteSuccess(w, "", map[string]interface{}{
		"archives": names,
		"count":    len(names),
	})
}

// fetchArticlesHandler triggers an on-demand fetch, either for one source
// (?source=name) or for all registered sources.
func (s *Server) fetchArticlesHandler(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("source"); name != "" {
		result, err := s.ingest.FetchSource(r.Context(), name)
		if err != nil {
			response.WriteNotFound(w, err.Error())
			return
		}
		response.WriteSuccess(w, "Fetch complete", []interface{}{result})
		return
	}

	results := s.ingest.FetchAll(r.Context())
	response.WriteSuccess(w, "Fetch complete", results)
}
