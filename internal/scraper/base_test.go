package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "strips tracking params",
			raw:      "https://www.linkedin.com/in/jane-doe?refId=abc&trackingId=xyz",
			expected: "https://www.linkedin.com/in/jane-doe",
		},
		{
			name:     "strips trailing slash",
			raw:      "https://www.linkedin.com/jobs/view/123/",
			expected: "https://www.linkedin.com/jobs/view/123",
		},
		{
			name:     "already canonical",
			raw:      "https://www.linkedin.com/jobs/view/123",
			expected: "https://www.linkedin.com/jobs/view/123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalURL(tt.raw))
		})
	}
}
