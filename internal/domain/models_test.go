package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/channel-scraper/internal/domain"
)

func TestSummarize(t *testing.T) {
	results := []domain.ChannelResult{
		{Alias: "a", Status: domain.StatusFound},
		{Alias: "b", Status: domain.StatusNotFound},
		{Alias: "c", Status: domain.StatusFailed},
		{Alias: "d", Status: domain.StatusFound},
		{Alias: "e", Status: domain.StatusFailed},
	}

	s := domain.Summarize(results)

	assert.Equal(t, 2, s.Found)
	assert.Equal(t, 1, s.NotFound)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, []string{"c", "e"}, s.FailedAliases)
}

func TestSummarizeEmpty(t *testing.T) {
	s := domain.Summarize(nil)
	assert.Zero(t, s.Found)
	assert.Zero(t, s.NotFound)
	assert.Zero(t, s.Failed)
	assert.Empty(t, s.FailedAliases)
}

func TestPlatformsCoverEnum(t *testing.T) {
	assert.Len(t, domain.Platforms, 11)
	assert.Equal(t, domain.PlatformUnknown, domain.Platforms[len(domain.Platforms)-1])
}
