// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/branchpoint/internal/api"
	"github.com/stwalsh4118/branchpoint/internal/catalog"
	"github.com/stwalsh4118/branchpoint/internal/config"
	"github.com/stwalsh4118/branchpoint/internal/db"
	"github.com/stwalsh4118/branchpoint/internal/events"
	"github.com/stwalsh4118/branchpoint/internal/logger"
	"github.com/stwalsh4118/branchpoint/internal/middleware"
	"github.com/stwalsh4118/branchpoint/internal/player"
	"github.com/stwalsh4118/branchpoint/internal/session"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	db      *db.DB
	catalog *catalog.Service
	media   *player.RemoteMedia
	runner  *session.Runner
	router  *gin.Engine
	server  *http.Server

	// cancelled on shutdown so open event streams end
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// New creates a server hosting one playback session. Media commands issued by
// the session are published as media.command messages for the browser.
func New(cfg *config.Config, database *db.DB) (*Server, error) {
	repos := db.NewRepositories(database)
	catalogService := catalog.NewService(repos)

	bus, err := events.NewBus()
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	media := player.NewRemoteMedia(func(cmd events.CommandPayload) {
		bus.Publish(events.MediaCommand, cmd)
	})

	sess, err := session.New(media, bus, catalogService, session.OptionsFromConfig(cfg.Player))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	runner, err := session.NewRunner(sess, cfg.Server.EventBufferSize)
	if err != nil {
		sess.Close()
		return nil, fmt.Errorf("failed to start session runner: %w", err)
	}

	baseCtx, cancel := context.WithCancel(context.Background())

	s := &Server{
		config:     cfg,
		db:         database,
		catalog:    catalogService,
		media:      media,
		runner:     runner,
		baseCtx:    baseCtx,
		cancelBase: cancel,
	}
	s.setupRouter()
	return s, nil
}

// Router returns the configured handler, e.g. for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestLogger())
	s.router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AddAllowHeaders(middleware.RequestIDHeader)
	corsConfig.AddExposeHeaders(middleware.RequestIDHeader)
	s.router.Use(cors.New(corsConfig))

	apiGroup := s.router.Group("/api")

	api.SetupHealthRoutes(apiGroup, s.db, s.runner)
	api.SetupVideoRoutes(apiGroup, s.catalog)
	api.SetupSessionRoutes(apiGroup, api.NewSessionHandler(s.runner, s.media, s.config.Server.EventBufferSize))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
		BaseContext:    func(net.Listener) context.Context { return s.baseCtx },
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server and stops the session
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	s.cancelBase()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	s.runner.Stop()

	logger.Log.Info().Msg("Server stopped")
	return nil
}
