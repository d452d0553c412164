package domain

import "time"

// ResolveStatus is the outcome of resolving an alias to a channel URL.
type ResolveStatus string

const (
	StatusFound    ResolveStatus = "found"
	StatusNotFound ResolveStatus = "not_found"
	StatusFailed   ResolveStatus = "failed"
)

// Platform identifies the destination a channel link points to.
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
	PlatformDiscord   Platform = "Discord"
	PlatformWebsite   Platform = "Website"
	PlatformTwitter   Platform = "Twitter"
	PlatformFacebook  Platform = "Facebook"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformPinterest Platform = "Pinterest"
	PlatformTwitch    Platform = "Twitch"
	PlatformYouTube   Platform = "YouTube"
	PlatformUnknown   Platform = "Unknown"
)

// Platforms lists every known platform in report-column order.
var Platforms = []Platform{
	PlatformInstagram,
	PlatformTikTok,
	PlatformDiscord,
	PlatformWebsite,
	PlatformTwitter,
	PlatformFacebook,
	PlatformLinkedIn,
	PlatformPinterest,
	PlatformTwitch,
	PlatformYouTube,
	PlatformUnknown,
}

// ChannelQuery is a single unit of input: the alias to resolve, plus an
// optional seed URL that skips the search when the channel is already known.
type ChannelQuery struct {
	Alias   string `json:"alias"`
	SeedURL string `json:"seed_url,omitempty"`
}

// ChannelResult is the resolution outcome for one query. Exactly one is
// produced per input query, in input order.
type ChannelResult struct {
	Alias      string        `json:"alias"`
	ChannelURL string        `json:"channel_url,omitempty"`
	Status     ResolveStatus `json:"status"`
	FailReason string        `json:"fail_reason,omitempty"`
	ResolvedAt time.Time     `json:"resolved_at"`
}

// ExtractedLink is one outbound link found on a channel page. A channel may
// yield any number of links, including several for the same platform.
type ExtractedLink struct {
	ChannelURL string   `json:"channel_url"`
	Platform   Platform `json:"platform"`
	RawURL     string   `json:"raw_url"`
	RawText    string   `json:"raw_text,omitempty"`
}

// ChannelLinks is the pivoted view of a channel's links: at most one URL per
// platform, first extracted link winning.
type ChannelLinks struct {
	ChannelURL string              `json:"channel_url"`
	Links      map[Platform]string `json:"links"`
}

// EngagementRecord carries the averaged view count over a channel's most
// recent videos and the bucket it falls into. Channels with no usable
// samples produce no record at all.
type EngagementRecord struct {
	ChannelURL       string  `json:"channel_url"`
	SampleVideoCount int     `json:"sample_video_count"`
	AverageViews     float64 `json:"average_views"`
	Category         string  `json:"category"`
}

// RunSummary is the terminal accounting of a resolution run. Failed aliases
// are listed so a follow-up run can target just those.
type RunSummary struct {
	Found         int      `json:"found"`
	NotFound      int      `json:"not_found"`
	Failed        int      `json:"failed"`
	FailedAliases []string `json:"failed_aliases,omitempty"`
}

// Summarize tallies resolution results into a RunSummary.
func Summarize(results []ChannelResult) RunSummary {
	var s RunSummary
	for _, r := range results {
		switch r.Status {
		case StatusFound:
			s.Found++
		case StatusNotFound:
			s.NotFound++
		default:
			s.Failed++
			s.FailedAliases = append(s.FailedAliases, r.Alias)
		}
	}
	return s
}
