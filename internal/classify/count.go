package classify

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseApproxCount parses view-count labels as rendered on video grids:
// "1,234 views", "12K views", "1.2M views", "987". K/M/B suffixes multiply
// by a thousand, a million, a billion.
func ParseApproxCount(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, "views")
	s = strings.TrimSuffix(s, "view")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("classify: empty view count %q", raw)
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'k':
		multiplier = 1_000
		s = s[:len(s)-1]
	case 'm':
		multiplier = 1_000_000
		s = s[:len(s)-1]
	case 'b':
		multiplier = 1_000_000_000
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("classify: unparsable view count %q: %w", raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("classify: negative view count %q", raw)
	}
	return n * multiplier, nil
}
