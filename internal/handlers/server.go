// Package handlers implements the HTTP API.
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/cryptolens/cryptolens/internal/auth"
	"github.com/cryptolens/cryptolens/internal/config"
	"github.com/cryptolens/cryptolens/internal/keyword"
	"github.com/cryptolens/cryptolens/internal/middleware"
	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/relevance"
	"github.com/cryptolens/cryptolens/internal/repository"
	"github.com/cryptolens/cryptolens/internal/repository/gcs"
	"github.com/cryptolens/cryptolens/internal/repository/sqlite"
	"github.com/cryptolens/cryptolens/internal/service"
	"github.com/cryptolens/cryptolens/internal/source"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	config *config.Config

	accounts  *service.AccountService
	feed      *service.PersonalizeService
	keywords  *service.KeywordService
	ingest    *service.IngestService
	tokens    *auth.TokenManager
	registry  *source.Registry
	articles  repository.ArticleRepository
	profiles  repository.ProfileRepository
	saved     repository.SavedArticleRepository
	folders   repository.FolderRepository
	activity  repository.ActivityRepository
	startTime time.Time

	store   *sqlite.Store
	archive repository.ArchiveRepository
}

// Deps bundles the dependencies for NewServerWithDeps. Used by tests to
// swap in mocks.
type Deps struct {
	Tokens   *auth.TokenManager
	Registry *source.Registry
	Articles repository.ArticleRepository
	Profiles repository.ProfileRepository
	Users    repository.UserRepository
	Saved    repository.SavedArticleRepository
	Folders  repository.FolderRepository
	Activity repository.ActivityRepository
	Resets   repository.ResetTokenRepository
	Archive  repository.ArchiveRepository
}

// NewServer creates a new HTTP server with the production wiring: a SQLite
// store, sources from configuration, and an optional GCS archive.
func NewServer(cfg *config.Config) (*Server, error) {
	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("loading sources: %w", err)
	}
	registry, err := source.BuildRegistry(cfg, sources)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("building source registry: %w", err)
	}

	var archive repository.ArchiveRepository
	if cfg.ArchiveBucket != "" {
		archive, err = gcs.NewArchive(context.Background(), cfg.ArchiveBucket)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("creating archive: %w", err)
		}
	}

	deps := Deps{
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		Registry: registry,
		Articles: store.Articles(),
		Profiles: store.Profiles(),
		Users:    store.Users(),
		Saved:    store.SavedArticles(),
		Folders:  store.Folders(),
		Activity: store.Activity(),
		Resets:   store.ResetTokens(),
		Archive:  archive,
	}

	server := NewServerWithDeps(cfg, deps)
	server.store = store
	return server, nil
}

// NewServerWithDeps creates a server from explicit dependencies.
func NewServerWithDeps(cfg *config.Config, deps Deps) *Server {
	extractor := keyword.NewExtractor(cfg.MaxKeywords, cfg.KeywordMinLength)
	scorer := relevance.NewScorer(relevance.Weights{
		Title:    cfg.TitleWeight,
		Summary:  cfg.SummaryWeight,
		TagExact: cfg.TagWeight,
	})

	return &Server{
		config:    cfg,
		accounts:  service.NewAccountService(deps.Users, deps.Profiles, deps.Resets, deps.Tokens),
		feed:      service.NewPersonalizeService(deps.Profiles, deps.Articles, scorer, cfg.FeedLimit),
		keywords:  service.NewKeywordService(extractor, deps.Profiles),
		ingest:    service.NewIngestService(deps.Registry, deps.Articles, deps.Archive),
		tokens:    deps.Tokens,
		registry:  deps.Registry,
		articles:  deps.Articles,
		profiles:  deps.Profiles,
		saved:     deps.Saved,
		folders:   deps.Folders,
		activity:  deps.Activity,
		startTime: time.Now(),
		archive:   deps.Archive,
	}
}

// Ingest exposes the ingest service for scheduled fetching.
func (s *Server) Ingest() *service.IngestService {
	return s.ingest
}

// Feed builds the personalized feed for a user. Used by the CLI.
func (s *Server) Feed(ctx context.Context, userID string) ([]model.Article, error) {
	return s.feed.Feed(ctx, userID)
}

// Close releases the server's storage resources.
func (s *Server) Close() error {
	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			log.Printf("Error closing archive: %v", err)
		}
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.corsMiddleware)
	api.Use(s.loggingMiddleware)

	// Health check
	api.HandleFunc("/health", s.healthHandler).Methods("GET")

	// Auth operations
	api.HandleFunc("/auth/signup", s.signupHandler).Methods("POST")
	api.HandleFunc("/auth/login", s.loginHandler).Methods("POST")
	api.HandleFunc("/auth/reset/request", s.resetRequestHandler).Methods("POST")
	api.HandleFunc("/auth/reset/confirm", s.resetConfirmHandler).Methods("POST")

	// Authenticated operations
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.Auth(s.tokens))

	authed.HandleFunc("/auth/me", s.meHandler).Methods("GET")
	authed.HandleFunc("/auth/password", s.changePasswordHandler).Methods("PUT")

	// Feed and keyword operations
	authed.HandleFunc("/feed", s.feedHandler).Methods("GET")
	authed.HandleFunc("/keywords/extract", s.extractKeywordsHandler).Methods("POST")

	// Profile operations
	authed.HandleFunc("/profile", s.getProfileHandler).Methods("GET")
	authed.HandleFunc("/profile", s.updateProfileHandler).Methods("PUT")

	// Article operations
	authed.HandleFunc("/articles", s.listArticlesHandler).Methods("GET")
	authed.HandleFunc("/articles/fetch", s.fetchArticlesHandler).Methods("POST")
	authed.HandleFunc("/articles/{id}", s.getArticleHandler).Methods("GET")
	authed.HandleFunc("/archives", s.listArchivesHandler).Methods("GET")

	// Saved article operations
	authed.HandleFunc("/saved", s.saveArticleHandler).Methods("POST")
	authed.HandleFunc("/saved", s.listSavedHandler).Methods("GET")
	authed.HandleFunc("/saved/{id}/read", s.markReadHandler).Methods("POST")
	authed.HandleFunc("/saved/{id}", s.deleteSavedHandler).Methods("DELETE")

	// Folder operations
	authed.HandleFunc("/folders", s.createFolderHandler).Methods("POST")
	authed.HandleFunc("/folders", s.listFoldersHandler).Methods("GET")

	// Activity tracking
	authed.HandleFunc("/activity", s.recordActivityHandler).Methods("POST")

	// Status and configuration
	authed.HandleFunc("/status", s.statusHandler).Methods("GET")
	authed.HandleFunc("/config", s.configHandler).Methods("GET")

	return r
}

// Middleware functions

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the ResponseWriter to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
