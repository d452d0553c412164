package scraper

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/user/channel-scraper/internal/browser"
	"github.com/user/channel-scraper/internal/domain"
	"github.com/user/channel-scraper/internal/pipeline"
)

var errEmptyAlias = errors.New("scraper: empty alias")

// errNotFound signals a legitimate miss inside resolveOne; it is converted
// to StatusNotFound, never surfaced as a task failure.
var errNotFound = errors.New("scraper: channel not found")

// ResolveChannels resolves every query to a canonical channel URL using the
// worker pool. Exactly one result per query is returned, in input order,
// alongside the run summary.
func (s *Scraper) ResolveChannels(ctx context.Context, queries []domain.ChannelQuery) ([]domain.ChannelResult, domain.RunSummary) {
	start := time.Now()
	s.logger.Info("starting channel resolution",
		zap.Int("queries", len(queries)),
		zap.Int("workers", s.cfg.WorkerCount))

	outcomes := pipeline.Run(ctx, s.logger, s.factory, queries, s.poolOptions(),
		func(ctx context.Context, sess browser.Session, q domain.ChannelQuery) (string, error) {
			return s.resolveOne(ctx, sess, q)
		})

	results := make([]domain.ChannelResult, 0, len(queries))
	for _, o := range outcomes {
		q := queries[o.Index]
		r := domain.ChannelResult{Alias: q.Alias, ResolvedAt: time.Now()}
		switch {
		case o.Err == nil:
			r.Status = domain.StatusFound
			r.ChannelURL = o.Value
		case errors.Is(o.Err, errNotFound):
			r.Status = domain.StatusNotFound
		default:
			r.Status = domain.StatusFailed
			r.FailReason = o.Err.Error()
			s.incError(stageSearch, o.Err)
		}
		s.incTask(stageSearch)
		results = append(results, r)
	}

	summary := domain.Summarize(results)
	s.observeStage(stageSearch, time.Since(start).Seconds())
	s.logger.Info("channel resolution finished",
		zap.Int("found", summary.Found),
		zap.Int("not_found", summary.NotFound),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", time.Since(start)))
	return results, summary
}

// resolveOne resolves a single alias: seed URL, cache, direct @handle
// probe, then the search-results fallback. A miss everywhere returns
// errNotFound; malformed input is terminal.
func (s *Scraper) resolveOne(ctx context.Context, sess browser.Session, q domain.ChannelQuery) (string, error) {
	alias := strings.TrimSpace(q.Alias)
	if alias == "" {
		return "", pipeline.Terminal(errEmptyAlias)
	}
	if q.SeedURL != "" {
		return q.SeedURL, nil
	}

	if s.cache != nil {
		if cached, ok, err := s.cache.Lookup(ctx, alias); err != nil {
			s.logger.Warn("resolve cache lookup failed", zap.String("alias", alias), zap.Error(err))
		} else if ok {
			s.logger.Debug("resolve cache hit", zap.String("alias", alias), zap.String("url", cached))
			return cached, nil
		}
	}

	// Direct @handle probe first; most aliases are registered handles.
	direct := directChannelURL(alias)
	if err := sess.Navigate(ctx, direct); err != nil {
		return "", err
	}
	title, err := sess.Title(ctx)
	if err != nil {
		return "", err
	}
	html, err := sess.HTML(ctx, "html")
	if err != nil {
		return "", err
	}
	if channelPageLive(title, html) {
		s.cacheResolved(ctx, alias, direct)
		return direct, nil
	}

	// Fall back to the search results page and take the first channel link.
	s.logger.Debug("direct handle miss, searching", zap.String("alias", alias))
	if err := sess.Navigate(ctx, searchResultsURL(alias)); err != nil {
		return "", err
	}
	html, err = sess.HTML(ctx, "html")
	if err != nil {
		return "", err
	}
	found, err := firstChannelLink(html)
	if err != nil {
		return "", err
	}
	if found == "" {
		// A legitimate miss, not a fault: don't burn retries on it.
		return "", pipeline.Terminal(errNotFound)
	}

	found = normalizeChannelURL(found)
	s.cacheResolved(ctx, alias, found)
	return found, nil
}

func (s *Scraper) cacheResolved(ctx context.Context, alias, channelURL string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Store(ctx, alias, channelURL, s.cfg.ResolveCacheTTL()); err != nil {
		s.logger.Warn("resolve cache store failed", zap.String("alias", alias), zap.Error(err))
	}
}

// channelPageLive reports whether the loaded page is a real channel rather
// than YouTube's 404 / channel-removed placeholder.
func channelPageLive(title, html string) bool {
	if strings.Contains(title, "404") {
		return false
	}
	if strings.Contains(html, "This channel does not exist") ||
		strings.Contains(html, "This channel is not available") {
		return false
	}
	return true
}

// firstChannelLink extracts the first @handle link from a rendered search
// results page.
func firstChannelLink(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &ParseError{Page: resultsSchema.page, Field: "channel_links", Err: err}
	}
	href, ok := doc.Find(resultsSchema.selector("channel_links")).First().Attr("href")
	if !ok {
		return "", nil
	}
	return href, nil
}
