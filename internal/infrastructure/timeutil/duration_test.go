package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "hours and minutes", input: "PT7H35M", want: "7h 35m"},
		{name: "only hours", input: "PT13H", want: "13h"},
		{name: "only minutes", input: "PT45M", want: "45m"},
		{name: "zero hours with minutes", input: "PT0H45M", want: "45m"},
		{name: "hours with zero minutes", input: "PT2H0M", want: "2h"},
		{name: "both zero returns input", input: "PT0H0M", want: "PT0H0M"},
		{name: "bare PT returns input", input: "PT", want: "PT"},
		{name: "no match returns input", input: "7 hours", want: "7 hours"},
		{name: "empty returns empty", input: "", want: ""},
		{name: "day designator does not match", input: "P1DT2H10M", want: "P1DT2H10M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDurationLabel(tt.input))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{minutes: 150, want: "2h 30m"},
		{minutes: 120, want: "2h"},
		{minutes: 45, want: "45m"},
		{minutes: 65, want: "1h 5m"},
		{minutes: 0, want: "0m"},
		{minutes: -10, want: "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.minutes))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantHour int
		wantMin  int
	}{
		{name: "local wall clock", input: "2025-06-01T08:15:00", wantOK: true, wantHour: 8, wantMin: 15},
		{name: "minute precision", input: "2025-06-01T23:05", wantOK: true, wantHour: 23, wantMin: 5},
		{name: "fractional seconds", input: "2025-06-01T08:15:00.123", wantOK: true, wantHour: 8, wantMin: 15},
		{name: "utc suffix", input: "2025-06-01T08:15:00Z", wantOK: true, wantHour: 8, wantMin: 15},
		{name: "offset keeps encoded hour", input: "2025-06-01T08:15:00+07:00", wantOK: true, wantHour: 8, wantMin: 15},
		{name: "date only", input: "2025-06-01", wantOK: true, wantHour: 0, wantMin: 0},
		{name: "empty", input: "", wantOK: false},
		{name: "garbage", input: "tomorrow morning", wantOK: false},
		{name: "impossible hour", input: "2025-06-01T25:00:00", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.True(t, got.IsZero())
				return
			}
			assert.Equal(t, tt.wantHour, got.Hour())
			assert.Equal(t, tt.wantMin, got.Minute())
		})
	}
}

func TestElapsedMinutes(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "same day", start: "2025-06-01T08:00:00", end: "2025-06-01T15:35:00", want: 455},
		{name: "overnight", start: "2025-06-01T22:00:00", end: "2025-06-02T06:30:00", want: 510},
		{name: "fraction truncated", start: "2025-06-01T08:00:00", end: "2025-06-01T08:01:59", want: 1},
		{name: "negative truncated toward zero", start: "2025-06-01T08:01:59", end: "2025-06-01T08:00:00", want: -1},
		{name: "offsets respected", start: "2025-06-01T08:00:00+02:00", end: "2025-06-01T08:00:00+00:00", want: 120},
		{name: "bad start", start: "nope", end: "2025-06-01T08:00:00", want: 0},
		{name: "bad end", start: "2025-06-01T08:00:00", end: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElapsedMinutes(tt.start, tt.end))
		})
	}
}

func TestHourOf(t *testing.T) {
	assert.Equal(t, 6, HourOf("2025-06-01T06:45:00"))
	assert.Equal(t, 23, HourOf("2025-06-01T23:10:00"))
	assert.Equal(t, 23, HourOf("2025-06-01T23:10:00-05:00"))
	assert.Equal(t, 0, HourOf("not a time"))
	assert.Equal(t, 0, HourOf(""))
}
