package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name     string
		ts       time.Time
		expected string
	}{
		{"instant présent", now, "Just now"},
		{"moins d'une minute", now.Add(-30 * time.Second), "Just now"},
		{"une minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"plusieurs minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"une heure", now.Add(-1 * time.Hour), "1 hour ago"},
		{"plusieurs heures", now.Add(-5 * time.Hour), "5 hours ago"},
		{"hier", now.Add(-30 * time.Hour), "Yesterday"},
		{"plusieurs jours", now.Add(-4 * 24 * time.Hour), "4 days ago"},
		{"horodatage futur", now.Add(2 * time.Hour), "Just now"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TimeAgo(tc.ts, now))
		})
	}
}
