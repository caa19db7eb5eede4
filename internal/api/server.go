package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/api/handlers"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/api/middleware"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/config"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/controllers"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/models"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, fetcher controllers.PlaylistFetcher, syncCtrl *controllers.SyncController, logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	router := s.setupRoutes(cfg, db, fetcher, syncCtrl)

	s.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logging(router, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg *config.Config, db *models.Database, fetcher controllers.PlaylistFetcher, syncCtrl *controllers.SyncController) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	healthHandler := handlers.NewHealthHandler()
	r.Get("/", healthHandler.Root)

	videosHandler := handlers.NewVideosHandler(cfg, db, fetcher, syncCtrl, s.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Route("/videos", func(r chi.Router) {
			r.Get("/list", videosHandler.List)
			r.Post("/sync", videosHandler.Sync)

			r.Get("/", videosHandler.ListStored)
			r.Delete("/", videosHandler.DeleteAllStored)
			r.Get("/count", videosHandler.CountStored)
			r.Get("/recent", videosHandler.RecentStored)
			r.Get("/{videoId}", videosHandler.GetStored)
			r.Patch("/{videoId}", videosHandler.UpdateStored)
			r.Delete("/{videoId}", videosHandler.DeleteStored)
		})
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
