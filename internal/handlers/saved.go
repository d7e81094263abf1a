package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cryptolens/cryptolens/internal/middleware"
	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/repository"
	"github.com/cryptolens/cryptolens/internal/response"
)

// saveArticleHandler bookmarks an article for the caller.
func (s *Server) saveArticleHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req struct {
		ArticleID string `json:"article_id"`
		FolderID  string `json:"folder_id"`
		Notes     string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if req.ArticleID == "" {
		response.WriteBadRequest(w, "article_id is required")
		return
	}

	if _, err := s.articles.GetByID(r.Context(), req.ArticleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.WriteNotFound(w, "Article not found")
			return
		}
		log.Printf("Error loading article %s: %v", req.ArticleID, err)
		response.WriteInternalError(w, "Failed to save article")
		return
	}

	saved, err := s.saved.Save(r.Context(), model.SavedArticle{
		UserID:    userID,
		ArticleID: req.ArticleID,
		FolderID:  req.FolderID,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.WriteConflict(w, "Article already saved")
			return
		}
		log.Printf("Error saving article for %s: %v", userID, err)
		response.WriteInternalError(w, "Failed to save article")
		return
	}

	response.WriteCreated(w, "Article saved", saved)
}

// listSavedHandler returns the caller's saved articles, newest first.
func (s *Server) listSavedHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	saved, err := s.saved.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing saved articles for %s: %v", userID, err)
		response.WriteInternalError(w, "Failed to list saved articles")
		return
	}

	response.WriteSuccess(w, "", map[string]interface{}{
		"saved": saved,
		"count": len(saved),
	})
}

// markReadHandler marks a saved article as read.
func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	savedID := mux.Vars(r)["id"]

	if err := s.saved.MarkRead(r.Context(), userID, savedID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.WriteNotFound(w, "Saved article not found")
			return
		}
		log.Printf("Error marking saved article %s read: %v", savedID, err)
		response.WriteInternalError(w, "Failed to update saved article")
		return
	}

	response.WriteSuccess(w, "Marked as read", nil)
}

// deleteSavedHandler removes a bookmark.
func (s *Server) deleteSavedHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	savedID := mux.Vars(r)["id"]

	if err := s.saved.Delete(r.Context(), userID, savedID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.WriteNotFound(w, "Saved article not found")
			return
		}
		log.Printf("Error deleting saved article %s: %v", savedID, err)
		response.WriteInternalError(w, "Failed to delete saved article")
		return
	}

	response.WriteSuccess(w, "Saved article removed", nil)
}
