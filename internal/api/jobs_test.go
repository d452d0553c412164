package api_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/channel-scraper/internal/api"
	"github.com/user/channel-scraper/internal/browser"
	"github.com/user/channel-scraper/internal/config"
	"github.com/user/channel-scraper/internal/domain"
	"github.com/user/channel-scraper/internal/scraper"
)

// deadSession serves nothing: every navigation times out, so every alias
// resolves to FAILED quickly. Good enough to drive the job lifecycle.
type deadSession struct{}

func (deadSession) Navigate(ctx context.Context, url string) error { return browser.ErrNavigationTimeout }
func (deadSession) Title(ctx context.Context) (string, error)      { return "", errors.New("no page") }
func (deadSession) HTML(ctx context.Context, sel string) (string, error) {
	return "", errors.New("no page")
}
func (deadSession) Click(ctx context.Context, sel string) error { return errors.New("no page") }
func (deadSession) Close() error                                { return nil }

type deadFactory struct{}

func (deadFactory) NewSession(ctx context.Context) (browser.Session, error) {
	return deadSession{}, nil
}

func newTestRunner() *api.JobRunner {
	cfg := &config.Config{
		WorkerCount:       2,
		MaxRetries:        0,
		RetryDelayMS:      1,
		RequestDelayMS:    0,
		NavTimeoutSeconds: 1,
		SampleVideoLimit:  5,
	}
	s := scraper.New(deadFactory{}, cfg, nil, nil, zap.NewNop())
	return api.NewJobRunner(s, zap.NewNop())
}

func TestJobLifecycle(t *testing.T) {
	runner := newTestRunner()

	job := runner.Submit(context.Background(), []string{"AliasA", "AliasB"})
	require.NotEmpty(t, job.ID)

	require.Eventually(t, func() bool {
		j, ok := runner.Get(job.ID)
		return ok && j.Status == api.JobCompleted
	}, 5*time.Second, 10*time.Millisecond)

	j, ok := runner.Get(job.ID)
	require.True(t, ok)
	require.NotNil(t, j.Summary)
	assert.Equal(t, 2, j.Summary.Failed)
	require.Len(t, j.Results, 2)
	assert.Equal(t, domain.StatusFailed, j.Results[0].Status)
	assert.NotNil(t, j.CompletedAt)
}

func TestJobGetUnknownID(t *testing.T) {
	runner := newTestRunner()
	_, ok := runner.Get("nope")
	assert.False(t, ok)
}
