package classify

import "math"

// Bucket is one engagement category: the label applies to averages strictly
// below Max and at or above the previous bucket's Max.
type Bucket struct {
	Label string
	Max   float64
}

// DefaultBuckets are the eight engagement categories. The cutoffs are
// empirical policy values, kept in one place so they can be swapped without
// touching callers.
var DefaultBuckets = []Bucket{
	{Label: "<5k", Max: 5_000},
	{Label: "5k-10k", Max: 10_000},
	{Label: "10k-25k", Max: 25_000},
	{Label: "25k-50k", Max: 50_000},
	{Label: "50k-100k", Max: 100_000},
	{Label: "100k-250k", Max: 250_000},
	{Label: "250k-1M", Max: 1_000_000},
	{Label: "1M+", Max: math.Inf(1)},
}

// Engagement buckets an average view count into one of the eight
// categories. Boundaries are half-open: 4999 is "<5k", 5000 is "5k-10k".
func Engagement(averageViews float64) string {
	for _, b := range DefaultBuckets {
		if averageViews < b.Max {
			return b.Label
		}
	}
	return DefaultBuckets[len(DefaultBuckets)-1].Label
}
