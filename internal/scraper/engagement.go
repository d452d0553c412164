package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/user/channel-scraper/internal/browser"
	"github.com/user/channel-scraper/internal/classify"
	"github.com/user/channel-scraper/internal/domain"
	"github.com/user/channel-scraper/internal/pipeline"
)

// CollectEngagement samples recent-video view counts for every channel and
// buckets the averages. Channels with zero usable samples yield no record;
// failed channels yield no record either, but are counted as errors.
func (s *Scraper) CollectEngagement(ctx context.Context, channelURLs []string) []domain.EngagementRecord {
	start := time.Now()
	s.logger.Info("starting engagement sampling",
		zap.Int("channels", len(channelURLs)),
		zap.Int("workers", s.cfg.WorkerCount),
		zap.Int("sample_limit", s.cfg.SampleVideoLimit))

	outcomes := pipeline.Run(ctx, s.logger, s.factory, channelURLs, s.poolOptions(),
		func(ctx context.Context, sess browser.Session, channelURL string) (*domain.EngagementRecord, error) {
			return s.sampleOne(ctx, sess, channelURL)
		})

	records := make([]domain.EngagementRecord, 0, len(channelURLs))
	for _, o := range outcomes {
		s.incTask(stageEngagement)
		if o.Err != nil {
			s.incError(stageEngagement, o.Err)
			s.logger.Warn("engagement sampling failed",
				zap.String("channel_url", channelURLs[o.Index]),
				zap.Error(o.Err))
			continue
		}
		if o.Value == nil {
			s.logger.Debug("no view samples", zap.String("channel_url", channelURLs[o.Index]))
			continue
		}
		records = append(records, *o.Value)
	}

	s.observeStage(stageEngagement, time.Since(start).Seconds())
	s.logger.Info("engagement sampling finished",
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)))
	return records
}

// sampleOne reads the channel's videos grid and averages up to the
// configured number of most-recent view counts. A nil record means the
// channel legitimately had no samples.
func (s *Scraper) sampleOne(ctx context.Context, sess browser.Session, channelURL string) (*domain.EngagementRecord, error) {
	if err := sess.Navigate(ctx, channelURL+"/videos"); err != nil {
		return nil, err
	}
	html, err := sess.HTML(ctx, "html")
	if err != nil {
		return nil, err
	}

	samples, err := parseViewCounts(html, s.cfg.SampleVideoLimit)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, nil
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	avg := sum / float64(len(samples))

	return &domain.EngagementRecord{
		ChannelURL:       channelURL,
		SampleVideoCount: len(samples),
		AverageViews:     avg,
		Category:         classify.Engagement(avg),
	}, nil
}

// parseViewCounts pulls up to limit view-count labels from a rendered
// videos grid. Labels that are not view counts (upload age, etc.) are
// skipped.
func parseViewCounts(html string, limit int) ([]float64, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Page: videosSchema.page, Field: "view_counts", Err: err}
	}
	if limit <= 0 {
		limit = 10
	}

	var samples []float64
	doc.Find(videosSchema.selector("view_counts")).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if !strings.Contains(strings.ToLower(text), "view") {
			return true
		}
		count, err := classify.ParseApproxCount(text)
		if err != nil {
			return true
		}
		samples = append(samples, count)
		return len(samples) < limit
	})
	return samples, nil
}
