package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/channel-scraper/internal/classify"
)

func TestParseApproxCount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"987", 987},
		{"1,234 views", 1234},
		{"12K views", 12_000},
		{"1.2M views", 1_200_000},
		{"3.5k views", 3_500},
		{"2B views", 2_000_000_000},
		{"1 view", 1},
		{"  450 views  ", 450},
	}
	for _, tt := range tests {
		got, err := classify.ParseApproxCount(tt.raw)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.InDelta(t, tt.want, got, 0.001, "raw=%q", tt.raw)
	}
}

func TestParseApproxCountErrors(t *testing.T) {
	for _, raw := range []string{"", "views", "3 days ago", "-12 views", "abcK views"} {
		_, err := classify.ParseApproxCount(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
