package scraper

import (
	"context"
	"errors"
	"sync"

	"github.com/user/channel-scraper/internal/browser"
	"github.com/user/channel-scraper/internal/config"
)

// fakePage is a canned rendered page keyed by URL in fakeSession.
type fakePage struct {
	title string
	html  string
}

// fakeSession serves fixture pages without a browser. Navigating to an
// unknown URL behaves like a navigation timeout.
type fakeSession struct {
	mu      sync.Mutex
	pages   map[string]fakePage
	current string
	closed  int
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[url]; !ok {
		return browser.ErrNavigationTimeout
	}
	s.current = url
	return nil
}

func (s *fakeSession) Title(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[s.current].title, nil
}

func (s *fakeSession) HTML(ctx context.Context, selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[s.current].html, nil
}

func (s *fakeSession) Click(ctx context.Context, selector string) error {
	return errors.New("no such element")
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

type fakeFactory struct {
	pages map[string]fakePage
}

func (f *fakeFactory) NewSession(ctx context.Context) (browser.Session, error) {
	return &fakeSession{pages: f.pages}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		WorkerCount:       2,
		MaxRetries:        1,
		RetryDelayMS:      1,
		RequestDelayMS:    0,
		NavTimeoutSeconds: 1,
		SampleVideoLimit:  10,
	}
}
