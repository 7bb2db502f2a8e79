package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/changewatch/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/sources.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/analyses.go -pkg mocks -skip-ensure -fmt goimports . AnalysisStore
//go:generate moq -out mocks/monitor.go -pkg mocks -skip-ensure -fmt goimports . Monitor
//go:generate moq -out mocks/synthesizer.go -pkg mocks -skip-ensure -fmt goimports . Synthesizer

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	sources  SourceStore
	analyses AnalysisStore
	monitor  Monitor
	synth    Synthesizer
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Deps groups collaborators of the server
type Deps struct {
	Config   ConfigProvider
	Sources  SourceStore
	Analyses AnalysisStore
	Monitor  Monitor
	Synth    Synthesizer
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
}

// SourceStore is the source registry
type SourceStore interface {
	CreateSource(ctx context.Context, name, url string) (*domain.Source, error)
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	ListSources(ctx context.Context) ([]*domain.Source, error)
	UpdateSource(ctx context.Context, id int64, upd domain.SourceUpdate) (*domain.Source, error)
	DeleteSource(ctx context.Context, id int64) error
}

// AnalysisStore reads cached analyses
type AnalysisStore interface {
	GetAnalysis(ctx context.Context, sourceID int64, version string) (*domain.Analysis, error)
}

// Monitor is the monitoring facade: status, history, settings and on-demand checks
type Monitor interface {
	Status(ctx context.Context) (domain.MonitorStatus, error)
	History(ctx context.Context, limit int) ([]domain.VersionRecord, error)
	Settings(ctx context.Context) (map[string]string, error)
	UpdateSettings(ctx context.Context, values map[string]string) error
	TriggerCheck()
	CheckSource(ctx context.Context, id int64) (*domain.CheckResult, error)
}

// Synthesizer turns text into WAV audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// New initializes a new server instance
func New(deps Deps, version string, debug bool) *Server {
	s := &Server{
		config:   deps.Config,
		sources:  deps.Sources,
		analyses: deps.Analyses,
		monitor:  deps.Monitor,
		synth:    deps.Synth,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Handler returns the router with middleware, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("changewatch", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(log.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /sources", s.listSourcesHandler)
		r.HandleFunc("POST /sources", s.createSourceHandler)
		r.HandleFunc("GET /sources/{id}", s.getSourceHandler)
		r.HandleFunc("PATCH /sources/{id}", s.updateSourceHandler)
		r.HandleFunc("DELETE /sources/{id}", s.deleteSourceHandler)
		r.HandleFunc("POST /sources/{id}/check", s.checkSourceHandler)
		r.HandleFunc("GET /sources/{id}/analysis", s.analysisHandler)
		r.HandleFunc("GET /sources/{id}/audio", s.audioHandler)

		r.HandleFunc("POST /check", s.triggerCheckHandler)
		r.HandleFunc("GET /monitor/status", s.monitorStatusHandler)
		r.HandleFunc("GET /history", s.historyHandler)
		r.HandleFunc("GET /settings", s.getSettingsHandler)
		r.HandleFunc("PUT /settings", s.updateSettingsHandler)
		r.HandleFunc("GET /rss", s.rssHandler)
	})
}
