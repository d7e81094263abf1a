// Package server adapts the HTTP API to Cloud Functions invocation.
package server

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/cryptolens/cryptolens/internal/config"
	"github.com/cryptolens/cryptolens/internal/handlers"
)

// CreateHandler creates the main HTTP handler for the application
func CreateHandler() (http.Handler, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		return nil, nil, err
	}

	srv, err := handlers.NewServer(cfg)
	if err != nil {
		log.Printf("Error creating server: %v\nStack:\n%s", err, debug.Stack())
		return nil, nil, err
	}

	cleanup := func() {
		srv.Close()
	}

	return srv.SetupRoutes(), cleanup, nil
}

// HandleRequest handles a single HTTP request (for Cloud Functions)
func HandleRequest(w http.ResponseWriter, r *http.Request) {
	handler, cleanup, err := CreateHandler()
	if err != nil {
		log.Printf("Failed to create handler: %v\nStack:\n%s", err, debug.Stack())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer cleanup()

	handler.ServeHTTP(w, r)
}
