package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/cryptolens/cryptolens/internal/middleware"
	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/response"
)

// createFolderHandler creates a saved-article folder.
func (s *Server) createFolderHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		response.WriteBadRequest(w, "Folder name is required")
		return
	}

	folder, err := s.folders.Create(r.Context(), model.Folder{
		UserID: userID,
		Name:   req.Name,
	})
	if err != nil {
		log.Printf("Error creating folder for %s: %v", userID, err)
		response.WriteInternalError(w, "Failed to create folder")
		return
	}

	response.WriteCreated(w, "Folder created", folder)
}

// listFoldersHandler returns the caller's folders.
func (s *Server) listFoldersHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	folders, err := s.folders.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing folders for %s: %v", userID, err)
		response.WriteInternalError(w, "Failed to list folders")
		return
	}

	response.WriteSuccess(w, "", map[string]interface{}{
		"folders": folders,
		"count":   len(folders),
	})
}
