// Package classify holds the pure classification logic: mapping raw link
// URLs/text to platform tags and average view counts to engagement buckets.
package classify

import (
	"strings"

	"github.com/user/channel-scraper/internal/domain"
)

// signature matches a platform by host fragments of the URL or keywords in
// the link text. First matching signature wins.
type signature struct {
	platform domain.Platform
	hosts    []string
	words    []string
}

// Order matters: more specific hosts come before catch-alls, and the
// text-keyword Website rule runs after all host rules.
var signatures = []signature{
	{platform: domain.PlatformInstagram, hosts: []string{"instagram.com", "instagr.am"}, words: []string{"instagram"}},
	{platform: domain.PlatformTikTok, hosts: []string{"tiktok.com"}, words: []string{"tiktok"}},
	{platform: domain.PlatformDiscord, hosts: []string{"discord.gg", "discord.com"}, words: []string{"discord"}},
	{platform: domain.PlatformTwitter, hosts: []string{"twitter.com", "x.com"}, words: []string{"twitter"}},
	{platform: domain.PlatformFacebook, hosts: []string{"facebook.com", "fb.com", "fb.me"}, words: []string{"facebook"}},
	{platform: domain.PlatformLinkedIn, hosts: []string{"linkedin.com"}, words: []string{"linkedin"}},
	{platform: domain.PlatformPinterest, hosts: []string{"pinterest.com", "pin.it"}, words: []string{"pinterest"}},
	{platform: domain.PlatformTwitch, hosts: []string{"twitch.tv"}, words: []string{"twitch"}},
	{platform: domain.PlatformYouTube, hosts: []string{"youtube.com", "youtu.be"}, words: []string{"youtube"}},
	{platform: domain.PlatformWebsite, words: []string{"website", "official site", "shop", "store", "merch"}},
}

// Platform maps a raw link URL and its visible text to a platform tag. It is
// total: anything unmatched is PlatformUnknown, never an error.
func Platform(rawURL, rawText string) domain.Platform {
	host := hostOf(rawURL)
	text := strings.ToLower(strings.TrimSpace(rawText))

	for _, sig := range signatures {
		for _, h := range sig.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return sig.platform
			}
		}
		for _, w := range sig.words {
			if w != "" && text != "" && strings.Contains(text, w) {
				return sig.platform
			}
		}
	}
	return domain.PlatformUnknown
}

// hostOf extracts a normalized host from a URL that may lack a protocol or
// carry a www prefix.
func hostOf(rawURL string) string {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	if s == "" {
		return ""
	}
	for _, prefix := range []string{"https://", "http://", "//"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	return s
}
