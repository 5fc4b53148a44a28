package feed

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration interprets an itunes:duration value. A bare integer is a
// second count; the integer attempt runs first because a value like "45"
// would otherwise be misread by the clock-time branch. Failing both, the
// duration is zero.
func ParseDuration(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}

	return parseClockTime(raw)
}

// parseClockTime handles H:MM:SS and MM:SS spans.
func parseClockTime(raw string) time.Duration {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second
}
