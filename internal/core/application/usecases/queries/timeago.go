package queries

import (
	"fmt"
	"time"
)

// timeAgo renders a timestamp the way the kitchen display shows it: relative
// while recent, absolute once the order is a week old.
func timeAgo(t, now time.Time) string {
	elapsed := now.Sub(t)

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < 2*time.Minute:
		return "1 minute ago"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	case elapsed < 2*time.Hour:
		return "1 hour ago"
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	case elapsed < 48*time.Hour:
		return "1 day ago"
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours()/24))
	default:
		return t.Format("2 Jan 2006")
	}
}
