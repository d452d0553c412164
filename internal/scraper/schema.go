package scraper

import "fmt"

// pageSchema names the fields a stage expects to find on a rendered page
// and the selector that locates each one. Keeping the expectations typed
// means a missing field surfaces as a ParseError instead of a silent empty
// result where the page structure was genuinely broken.
type pageSchema struct {
	page      string
	selectors map[string]string
}

func (p pageSchema) selector(field string) string {
	return p.selectors[field]
}

var (
	featuredSchema = pageSchema{
		page: "featured",
		selectors: map[string]string{
			"description_links": "#description a",
			"more_button":       "tp-yt-paper-button",
		},
	}
	aboutSchema = pageSchema{
		page: "about",
		selectors: map[string]string{
			"link_rows":  "#links-section yt-channel-external-link-view-model",
			"link_title": ".ytChannelExternalLinkViewModelTitle",
			"links":      "#links-section a",
		},
	}
	videosSchema = pageSchema{
		page: "videos",
		selectors: map[string]string{
			"view_counts": "span.inline-metadata-item",
		},
	}
	resultsSchema = pageSchema{
		page: "results",
		selectors: map[string]string{
			"channel_links": `a[href*="/@"]`,
		},
	}
)

// ParseError reports that an expected field could not be read from a page.
type ParseError struct {
	Page  string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scraper: parsing %s field %q: %v", e.Page, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
