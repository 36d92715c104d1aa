package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutesBetween(t *testing.T) {
	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "Exact half hour",
			start:    base,
			end:      base.Add(30 * time.Minute),
			expected: 30,
		},
		{
			name:     "Sub-minute remainder floors",
			start:    base,
			end:      base.Add(29*time.Minute + 59*time.Second),
			expected: 29,
		},
		{
			name:     "Millisecond shy of a minute",
			start:    base,
			end:      base.Add(time.Minute - time.Millisecond),
			expected: 0,
		},
		{
			name:     "Negative delta clamps to zero",
			start:    base,
			end:      base.Add(-10 * time.Minute),
			expected: 0,
		},
		{
			name:     "Zero delta",
			start:    base,
			end:      base,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MinutesBetween(tt.start, tt.end))
		})
	}
}

func TestMinutesBetweenISO(t *testing.T) {
	assert.Equal(t, 45, MinutesBetweenISO("2024-01-10T09:00:00Z", "2024-01-10T09:45:00Z"))
	assert.Equal(t, 0, MinutesBetweenISO("garbage", "2024-01-10T09:45:00Z"))
	assert.Equal(t, 0, MinutesBetweenISO("2024-01-10T09:00:00Z", ""))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatDuration(0))
	assert.Equal(t, "0h 45m", FormatDuration(45))
	assert.Equal(t, "8h 0m", FormatDuration(480))
	assert.Equal(t, "7h 30m", FormatDuration(450))
	assert.Equal(t, "0h 0m", FormatDuration(-5))
}

func TestDateAndMonthKeys(t *testing.T) {
	ts := time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-07", DateKey(ts))
	assert.Equal(t, "2024-03", MonthKey(2024, 3))
	assert.Equal(t, "2024-12", MonthKey(2024, 12))
}

func TestFormatTimeHHMM(t *testing.T) {
	iso := "2024-01-10T09:05:00Z"
	assert.Equal(t, "09:05", FormatTimeHHMM(&iso))
	assert.Equal(t, "", FormatTimeHHMM(nil))
	bad := "not-a-time"
	assert.Equal(t, "", FormatTimeHHMM(&bad))
}

func TestParseISOTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "RFC3339", input: "2024-01-10T09:00:00Z"},
		{name: "With nanoseconds", input: "2025-10-13T09:30:00.123Z"},
		{name: "Space separated", input: "2024-01-10 09:00:00"},
		{name: "Date only", input: "2024-01-10"},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISOTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}
