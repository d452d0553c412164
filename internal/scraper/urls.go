package scraper

import (
	"net/url"
	"strings"
)

const youtubeBase = "https://www.youtube.com"

// directChannelURL builds the @handle URL probed before falling back to
// search. Spaces are stripped, matching how handles are registered.
func directChannelURL(alias string) string {
	handle := strings.ReplaceAll(strings.TrimSpace(alias), " ", "")
	return youtubeBase + "/@" + handle
}

// searchResultsURL builds the results-page URL for an alias.
func searchResultsURL(alias string) string {
	return youtubeBase + "/results?search_query=" + url.QueryEscape(alias)
}

// normalizeChannelURL makes scraped hrefs absolute.
func normalizeChannelURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return youtubeBase + href
	}
	return href
}

// CleanRedirect unwraps YouTube's outbound redirect URLs
// (youtube.com/redirect?...&q=<target>) to the real destination. Anything
// else passes through untouched.
func CleanRedirect(raw string) string {
	if raw == "" || !strings.Contains(raw, "redirect") {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if target := parsed.Query().Get("q"); target != "" {
		return target
	}
	return raw
}
