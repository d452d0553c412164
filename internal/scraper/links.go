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

// ExtractLinks harvests outbound links from every channel's featured and
// about pages. Links are returned grouped per channel in input order; a
// channel that fails after retries simply contributes no links.
func (s *Scraper) ExtractLinks(ctx context.Context, channelURLs []string) []domain.ExtractedLink {
	start := time.Now()
	s.logger.Info("starting link extraction",
		zap.Int("channels", len(channelURLs)),
		zap.Int("workers", s.cfg.WorkerCount))

	outcomes := pipeline.Run(ctx, s.logger, s.factory, channelURLs, s.poolOptions(),
		func(ctx context.Context, sess browser.Session, channelURL string) ([]domain.ExtractedLink, error) {
			return s.extractOne(ctx, sess, channelURL)
		})

	var links []domain.ExtractedLink
	for _, o := range outcomes {
		s.incTask(stageLinks)
		if o.Err != nil {
			s.incError(stageLinks, o.Err)
			s.logger.Warn("link extraction failed",
				zap.String("channel_url", channelURLs[o.Index]),
				zap.Error(o.Err))
			continue
		}
		links = append(links, o.Value...)
	}

	s.observeStage(stageLinks, time.Since(start).Seconds())
	s.logger.Info("link extraction finished",
		zap.Int("links", len(links)),
		zap.Duration("elapsed", time.Since(start)))
	return links
}

// extractOne reads one channel's featured-page description links and
// about-page official links.
func (s *Scraper) extractOne(ctx context.Context, sess browser.Session, channelURL string) ([]domain.ExtractedLink, error) {
	var links []domain.ExtractedLink

	if err := sess.Navigate(ctx, channelURL+"/featured"); err != nil {
		return nil, err
	}
	// Description links hide behind a "...more" expander; a missing button
	// just means the description was short.
	if err := sess.Click(ctx, featuredSchema.selector("more_button")); err != nil {
		s.logger.Debug("no description expander", zap.String("channel_url", channelURL))
	}
	html, err := sess.HTML(ctx, "html")
	if err != nil {
		return nil, err
	}
	descLinks, err := parseDescriptionLinks(html, channelURL)
	if err != nil {
		return nil, err
	}
	links = append(links, descLinks...)

	if err := sess.Navigate(ctx, channelURL+"/about"); err != nil {
		return nil, err
	}
	html, err = sess.HTML(ctx, "html")
	if err != nil {
		return nil, err
	}
	aboutLinks, err := parseAboutLinks(html, channelURL)
	if err != nil {
		return nil, err
	}
	links = append(links, aboutLinks...)

	s.logger.Debug("extracted links",
		zap.String("channel_url", channelURL),
		zap.Int("count", len(links)))
	return links, nil
}

func parseDescriptionLinks(html, channelURL string) ([]domain.ExtractedLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Page: featuredSchema.page, Field: "description_links", Err: err}
	}

	var links []domain.ExtractedLink
	doc.Find(featuredSchema.selector("description_links")).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if link, ok := buildLink(channelURL, href, sel.Text()); ok {
			links = append(links, link)
		}
	})
	return links, nil
}

func parseAboutLinks(html, channelURL string) ([]domain.ExtractedLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Page: aboutSchema.page, Field: "link_rows", Err: err}
	}

	var links []domain.ExtractedLink
	rows := doc.Find(aboutSchema.selector("link_rows"))
	if rows.Length() > 0 {
		rows.Each(func(_ int, row *goquery.Selection) {
			title := strings.TrimSpace(row.Find(aboutSchema.selector("link_title")).Text())
			href, ok := row.Find("a").First().Attr("href")
			if !ok {
				return
			}
			if link, ok := buildLink(channelURL, href, title); ok {
				links = append(links, link)
			}
		})
		return links, nil
	}

	// Older page layout: plain anchors inside the links section.
	doc.Find(aboutSchema.selector("links")).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if link, ok := buildLink(channelURL, href, sel.Text()); ok {
			links = append(links, link)
		}
	})
	return links, nil
}

func buildLink(channelURL, href, text string) (domain.ExtractedLink, bool) {
	clean := CleanRedirect(strings.TrimSpace(href))
	if clean == "" {
		return domain.ExtractedLink{}, false
	}
	return domain.ExtractedLink{
		ChannelURL: channelURL,
		Platform:   classify.Platform(clean, text),
		RawURL:     clean,
		RawText:    strings.TrimSpace(text),
	}, true
}

// Pivot collapses extracted links to one row per channel with at most one
// URL per platform, first link winning. Channel order follows first
// appearance in links.
func Pivot(links []domain.ExtractedLink) []domain.ChannelLinks {
	index := make(map[string]int)
	var pivoted []domain.ChannelLinks
	for _, l := range links {
		i, ok := index[l.ChannelURL]
		if !ok {
			i = len(pivoted)
			index[l.ChannelURL] = i
			pivoted = append(pivoted, domain.ChannelLinks{
				ChannelURL: l.ChannelURL,
				Links:      make(map[domain.Platform]string),
			})
		}
		if _, exists := pivoted[i].Links[l.Platform]; !exists {
			pivoted[i].Links[l.Platform] = l.RawURL
		}
	}
	return pivoted
}
