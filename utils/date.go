package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02" // yyyy-MM-dd
	MonthLayout = "2006-01"
)

// FormatISO renders a timestamp the way records store them (RFC3339, UTC).
func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// DateKey returns the calendar-day key for a timestamp, e.g. "2024-01-10".
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey returns the month prefix used for filtering, e.g. "2024-01".
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	// Try standard RFC3339 format (ISO 8601)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	// Try with nanoseconds (e.g. 2025-10-13T09:30:00.123Z)
	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	// Try fallback common formats
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, time.UTC); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}

// MinutesBetween returns whole minutes from start to end, floored from the
// millisecond delta and clamped at zero.
func MinutesBetween(start, end time.Time) int {
	ms := end.Sub(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(ms / 60000)
}

// MinutesBetweenISO is MinutesBetween over stored timestamps. Unparseable
// input counts as zero minutes; a bad record must still be displayable.
func MinutesBetweenISO(startISO, endISO string) int {
	start, err := ParseISOTime(startISO)
	if err != nil {
		return 0
	}
	end, err := ParseISOTime(endISO)
	if err != nil {
		return 0
	}
	return MinutesBetween(*start, *end)
}

// FormatDuration renders a minute total as "7h 30m".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatTimeHHMM renders a stored timestamp as wall-clock "15:04" for
// display and export columns. Nil or unparseable input renders empty.
func FormatTimeHHMM(iso *string) string {
	if iso == nil {
		return ""
	}
	t, err := ParseISOTime(*iso)
	if err != nil {
		return ""
	}
	return t.UTC().Format("15:04")
}
