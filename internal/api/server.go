package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/channel-scraper/internal/config"
	"github.com/user/channel-scraper/internal/storage"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	runner     *JobRunner
	pgStore    *storage.PostgresStore
	cache      *storage.ResolveCache
	logger     *zap.Logger
}

func NewServer(cfg *config.Config, runner *JobRunner, ps *storage.PostgresStore, cache *storage.ResolveCache, l *zap.Logger) *Server {
	s := &Server{
		config:  cfg,
		runner:  runner,
		pgStore: ps,
		cache:   cache,
		logger:  l,
	}
	s.router = s.setupRouter()
	return s
}

// Router exposes the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
