package browser

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Chrome is a Session factory backed by chromedp. Each session gets its own
// exec allocator so a crashed Chrome process takes down only one worker's
// session.
type Chrome struct {
	headless   bool
	navTimeout time.Duration
	onOpened   func()
	logger     *zap.Logger
	agents     *agentPool
}

// ChromeOptions configures the chromedp factory.
type ChromeOptions struct {
	Headless   bool
	NavTimeout time.Duration
	// OnSessionOpened is called once per successfully opened session.
	OnSessionOpened func()
}

func NewChrome(opts ChromeOptions, logger *zap.Logger) *Chrome {
	return &Chrome{
		headless:   opts.Headless,
		navTimeout: opts.NavTimeout,
		onOpened:   opts.OnSessionOpened,
		logger:     logger,
		agents:     defaultAgents(),
	}
}

// NewSession starts a browser process and returns a handle bound to it.
func (c *Chrome) NewSession(ctx context.Context) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(c.agents.next()),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	s := &chromeSession{
		ctx:        taskCtx,
		navTimeout: c.navTimeout,
		logger:     c.logger,
		cancels:    []context.CancelFunc{taskCancel, allocCancel},
	}

	// Force the browser process up now so acquisition failures surface at
	// worker start, not on the first navigation.
	if err := chromedp.Run(taskCtx); err != nil {
		s.Close()
		return nil, err
	}
	if c.onOpened != nil {
		c.onOpened()
	}
	return s, nil
}

type chromeSession struct {
	ctx        context.Context
	navTimeout time.Duration
	logger     *zap.Logger
	cancels    []context.CancelFunc
	closeOnce  sync.Once
	closed     bool
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	if s.closed {
		return ErrSessionClosed
	}
	runCtx, cancel := context.WithTimeout(s.ctx, s.navTimeout)
	defer cancel()

	s.logger.Debug("navigating", zap.String("url", url))
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrNavigationTimeout
		}
		return err
	}
	return nil
}

func (s *chromeSession) Title(ctx context.Context) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	runCtx, cancel := context.WithTimeout(s.ctx, s.navTimeout)
	defer cancel()

	var title string
	if err := chromedp.Run(runCtx, chromedp.Title(&title)); err != nil {
		return "", err
	}
	return title, nil
}

func (s *chromeSession) HTML(ctx context.Context, selector string) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	runCtx, cancel := context.WithTimeout(s.ctx, s.navTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML(selector, &html, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrNavigationTimeout
		}
		return "", err
	}
	return html, nil
}

func (s *chromeSession) Click(ctx context.Context, selector string) error {
	if s.closed {
		return ErrSessionClosed
	}
	// Expander buttons are best-effort; keep the wait short so a missing
	// button doesn't burn the whole navigation timeout.
	runCtx, cancel := context.WithTimeout(s.ctx, 3*time.Second)
	defer cancel()

	return chromedp.Run(runCtx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
}

func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.closed = true
		for _, cancel := range s.cancels {
			cancel()
		}
	})
	return nil
}
