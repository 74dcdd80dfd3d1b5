package timeutil

// Display layouts for offer cards.
const (
	ClockLayout = "15:04"
	DayLayout   = "Jan 02, 2006"
	DateLayout  = "2006-01-02"
)

// FormatClock formats a timestamp as HH:MM, returning iso unchanged if it fails to parse.
func FormatClock(iso string) string {
	return formatOr(iso, ClockLayout)
}

// FormatDay formats a timestamp as "Jan 02, 2006", returning iso unchanged if it fails to parse.
func FormatDay(iso string) string {
	return formatOr(iso, DayLayout)
}

// FormatDate formats a timestamp as YYYY-MM-DD, returning iso unchanged if it fails to parse.
func FormatDate(iso string) string {
	return formatOr(iso, DateLayout)
}

func formatOr(iso, layout string) string {
	t, ok := ParseTimestamp(iso)
	if !ok {
		return iso
	}
	return t.Format(layout)
}
