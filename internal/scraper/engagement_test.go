package scraper

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const videosFixture = `<html><body><div id="contents">
<span class="inline-metadata-item">12K views</span>
<span class="inline-metadata-item">3 days ago</span>
<span class="inline-metadata-item">8,000 views</span>
<span class="inline-metadata-item">1 week ago</span>
<span class="inline-metadata-item">10K views</span>
</div></body></html>`

func TestCollectEngagement(t *testing.T) {
	factory := &fakeFactory{pages: map[string]fakePage{
		channelURL + "/videos": {html: videosFixture},
	}}
	s := New(factory, testConfig(), nil, nil, zap.NewNop())

	records := s.CollectEngagement(context.Background(), []string{channelURL})

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, channelURL, r.ChannelURL)
	assert.Equal(t, 3, r.SampleVideoCount)
	assert.InDelta(t, 10000, r.AverageViews, 0.001) // (12000+8000+10000)/3
	assert.Equal(t, "10k-25k", r.Category)
}

func TestCollectEngagementZeroSamplesYieldsNoRecord(t *testing.T) {
	noVideos := `<html><body><div id="contents">This channel has no videos.</div></body></html>`
	factory := &fakeFactory{pages: map[string]fakePage{
		channelURL + "/videos": {html: noVideos},
	}}
	s := New(factory, testConfig(), nil, nil, zap.NewNop())

	records := s.CollectEngagement(context.Background(), []string{channelURL})

	assert.Empty(t, records)
}

func TestParseViewCountsRespectsLimit(t *testing.T) {
	html := "<html><body>"
	for i := 0; i < 20; i++ {
		html += fmt.Sprintf(`<span class="inline-metadata-item">%d views</span>`, (i+1)*100)
	}
	html += "</body></html>"

	samples, err := parseViewCounts(html, 5)
	require.NoError(t, err)
	require.Len(t, samples, 5)
	assert.Equal(t, []float64{100, 200, 300, 400, 500}, samples)
}

func TestParseViewCountsSkipsNonViewLabels(t *testing.T) {
	samples, err := parseViewCounts(videosFixture, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{12000, 8000, 10000}, samples)
}

func TestSampleOneAveragesAndBuckets(t *testing.T) {
	sess := &fakeSession{pages: map[string]fakePage{
		channelURL + "/videos": {html: `<html><body>
			<span class="inline-metadata-item">1.2M views</span>
			<span class="inline-metadata-item">800K views</span>
		</body></html>`},
	}}
	s := New(nil, testConfig(), nil, nil, zap.NewNop())

	record, err := s.sampleOne(context.Background(), sess, channelURL)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 2, record.SampleVideoCount)
	assert.InDelta(t, 1_000_000, record.AverageViews, 0.001)
	assert.Equal(t, "1M+", record.Category)
}

// Engagement records are produced per channel that yields samples; input
// cardinality shows up as at-most-one record per channel.
func TestCollectEngagementMixedChannels(t *testing.T) {
	other := "https://www.youtube.com/@other"
	factory := &fakeFactory{pages: map[string]fakePage{
		channelURL + "/videos": {html: videosFixture},
		other + "/videos":      {html: "<html><body>no metadata</body></html>"},
	}}
	s := New(factory, testConfig(), nil, nil, zap.NewNop())

	records := s.CollectEngagement(context.Background(), []string{channelURL, other})

	require.Len(t, records, 1)
	assert.Equal(t, channelURL, records[0].ChannelURL)
}
