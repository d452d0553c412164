package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/channel-scraper/internal/domain"
	"github.com/user/channel-scraper/internal/scraper"
)

// JobStatus tracks a submitted scrape job through its lifetime.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
)

// Job is one scrape run submitted through the API.
type Job struct {
	ID          string                    `json:"id"`
	Status      JobStatus                 `json:"status"`
	Aliases     []string                  `json:"aliases"`
	CreatedAt   time.Time                 `json:"created_at"`
	CompletedAt *time.Time                `json:"completed_at,omitempty"`
	Summary     *domain.RunSummary        `json:"summary,omitempty"`
	Results     []domain.ChannelResult    `json:"results,omitempty"`
	Links       []domain.ChannelLinks     `json:"links,omitempty"`
	Engagement  []domain.EngagementRecord `json:"engagement,omitempty"`
}

// JobRunner owns submitted jobs and runs them one at a time against the
// shared scraper, so two jobs never compete for browser capacity.
type JobRunner struct {
	scraper *scraper.Scraper
	logger  *zap.Logger

	mu      sync.RWMutex
	jobs    map[string]*Job
	runSlot chan struct{}
}

func NewJobRunner(s *scraper.Scraper, logger *zap.Logger) *JobRunner {
	return &JobRunner{
		scraper: s,
		logger:  logger,
		jobs:    make(map[string]*Job),
		runSlot: make(chan struct{}, 1),
	}
}

// Submit registers a job and starts it in the background.
func (r *JobRunner) Submit(ctx context.Context, aliases []string) *Job {
	job := &Job{
		ID:        uuid.New().String(),
		Status:    JobQueued,
		Aliases:   aliases,
		CreatedAt: time.Now(),
	}
	r.mu.Lock()
	r.jobs[job.ID] = job
	r.mu.Unlock()

	go r.run(ctx, job.ID)
	return job
}

// Get returns a snapshot of a job by ID.
func (r *JobRunner) Get(id string) (*Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, false
	}
	snapshot := *job
	return &snapshot, true
}

func (r *JobRunner) run(ctx context.Context, id string) {
	r.runSlot <- struct{}{}
	defer func() { <-r.runSlot }()

	r.mu.Lock()
	job, ok := r.jobs[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	job.Status = JobRunning
	aliases := job.Aliases
	r.mu.Unlock()

	r.logger.Info("job started", zap.String("job_id", id), zap.Int("aliases", len(aliases)))

	queries := make([]domain.ChannelQuery, len(aliases))
	for i, a := range aliases {
		queries[i] = domain.ChannelQuery{Alias: a}
	}

	results, summary := r.scraper.ResolveChannels(ctx, queries)

	var found []string
	for _, res := range results {
		if res.Status == domain.StatusFound {
			found = append(found, res.ChannelURL)
		}
	}
	links := r.scraper.ExtractLinks(ctx, found)
	engagement := r.scraper.CollectEngagement(ctx, found)

	now := time.Now()
	r.mu.Lock()
	job.Status = JobCompleted
	job.CompletedAt = &now
	job.Summary = &summary
	job.Results = results
	job.Links = scraper.Pivot(links)
	job.Engagement = engagement
	r.mu.Unlock()

	r.logger.Info("job completed",
		zap.String("job_id", id),
		zap.Int("found", summary.Found),
		zap.Int("not_found", summary.NotFound),
		zap.Int("failed", summary.Failed))
}
