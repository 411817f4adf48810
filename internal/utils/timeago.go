package utils

import (
	"fmt"
	"time"
)

// TimeAgo convertit un horodatage en libellé relatif pour le fil d'activité
func TimeAgo(ts time.Time, now time.Time) string {
	diff := now.Sub(ts)
	if diff < 0 {
		diff = 0
	}

	days := int(diff.Hours() / 24)
	switch {
	case days > 1:
		return fmt.Sprintf("%d days ago", days)
	case days == 1:
		return "Yesterday"
	case diff >= time.Hour:
		hours := int(diff.Hours())
		if hours > 1 {
			return fmt.Sprintf("%d hours ago", hours)
		}
		return "1 hour ago"
	case diff >= time.Minute:
		minutes := int(diff.Minutes())
		if minutes > 1 {
			return fmt.Sprintf("%d minutes ago", minutes)
		}
		return "1 minute ago"
	default:
		return "Just now"
	}
}
