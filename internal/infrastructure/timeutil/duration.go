package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// durationPattern matches the hour/minute part of an ISO-8601 duration token.
// It is unanchored; the first "PT" occurrence wins.
var durationPattern = regexp.MustCompile(`PT(\d+H)?(\d+M)?`)

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDurationLabel renders an ISO-8601 duration such as "PT7H35M" as "7h 35m".
// Only hours gives "7h", only minutes gives "35m". When the token does not match,
// or both components are absent or zero, the input is returned unchanged.
func ParseDurationLabel(d string) string {
	m := durationPattern.FindStringSubmatch(d)
	if m == nil {
		return d
	}

	hours := leadingInt(m[1])
	minutes := leadingInt(m[2])

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return d
	}
}

// leadingInt parses the digits of a "12H" style group; empty or invalid yields 0.
func leadingInt(group string) int {
	if len(group) < 2 {
		return 0
	}
	n, err := strconv.Atoi(group[:len(group)-1])
	if err != nil {
		return 0
	}
	return n
}

// FormatMinutes renders a minute count as "2h 30m", "2h" or "45m".
func FormatMinutes(total int) string {
	if total <= 0 {
		return "0m"
	}
	hours, minutes := total/60, total%60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// ParseTimestamp parses an ISO-8601 timestamp with or without an offset.
// Timestamps without an offset are read as UTC so the wall clock is preserved.
func ParseTimestamp(iso string) (time.Time, bool) {
	if iso == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ElapsedMinutes returns end minus start in whole minutes, truncated toward zero.
// Returns 0 if either timestamp fails to parse.
func ElapsedMinutes(startISO, endISO string) int {
	start, ok := ParseTimestamp(startISO)
	if !ok {
		return 0
	}
	end, ok := ParseTimestamp(endISO)
	if !ok {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// HourOf returns the wall-clock hour encoded in iso, or 0 if it fails to parse.
// No timezone conversion is applied.
func HourOf(iso string) int {
	t, ok := ParseTimestamp(iso)
	if !ok {
		return 0
	}
	return t.Hour()
}
