// Package scraper implements the three extraction stages over a browser
// session: alias-to-channel resolution, social-link extraction and
// engagement sampling. Each stage runs through the pipeline worker pool.
package scraper

import (
	"github.com/user/channel-scraper/internal/browser"
	"github.com/user/channel-scraper/internal/config"
	"github.com/user/channel-scraper/internal/monitoring"
	"github.com/user/channel-scraper/internal/pipeline"
	"github.com/user/channel-scraper/internal/storage"
	"go.uber.org/zap"
)

const (
	stageSearch     = "search"
	stageLinks      = "links"
	stageEngagement = "engagement"
)

// Scraper wires the stages to a browser factory and optional cache/metrics.
type Scraper struct {
	factory browser.Factory
	cfg     *config.Config
	cache   *storage.ResolveCache
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// New creates a Scraper. cache and metrics may be nil; the stages then skip
// caching and instrumentation.
func New(factory browser.Factory, cfg *config.Config, cache *storage.ResolveCache, metrics *monitoring.Metrics, logger *zap.Logger) *Scraper {
	return &Scraper{
		factory: factory,
		cfg:     cfg,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Scraper) poolOptions() pipeline.Options {
	return pipeline.Options{
		Workers:    s.cfg.WorkerCount,
		MaxRetries: s.cfg.MaxRetries,
		RetryDelay: s.cfg.RetryDelay(),
		TaskDelay:  s.cfg.RequestDelay(),
	}
}

func (s *Scraper) incTask(stage string) {
	if s.metrics != nil {
		s.metrics.IncTask(stage)
	}
}

func (s *Scraper) incError(stage string, err error) {
	if s.metrics == nil {
		return
	}
	kind := "retry_exhausted"
	if pipeline.IsTerminal(err) {
		kind = "terminal"
	}
	s.metrics.IncError(stage, kind)
}

func (s *Scraper) observeStage(stage string, seconds float64) {
	if s.metrics != nil {
		s.metrics.ObserveStage(stage, seconds)
	}
}
