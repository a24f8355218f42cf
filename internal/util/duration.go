package util

import (
	"fmt"
	"time"
)

// FormatEscapeTime renders an elapsed duration as H:MM:SS, truncated to whole
// seconds. Hours are not zero-padded, so 125s comes out as "0:02:05"; this is
// the format the leaderboard has always displayed.
func FormatEscapeTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
