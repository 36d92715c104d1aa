package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kintai-app/kintai/model"
	"github.com/kintai-app/kintai/utils"
)

func ts(hour, min int) time.Time {
	return time.Date(2024, 1, 10, hour, min, 0, 0, time.UTC)
}

func iso(hour, min int) string {
	return utils.FormatISO(ts(hour, min))
}

func TestDeriveStatusPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		record   *model.AttendanceRecord
		expected Status
	}{
		{
			name:     "Fresh record",
			record:   model.NewRecord("2024-01-10"),
			expected: StatusNotClockedIn,
		},
		{
			name: "Clocked in, no breaks",
			record: &model.AttendanceRecord{
				Date:    "2024-01-10",
				ClockIn: utils.Ptr(iso(9, 0)),
			},
			expected: StatusWorking,
		},
		{
			name: "Open break",
			record: &model.AttendanceRecord{
				Date:    "2024-01-10",
				ClockIn: utils.Ptr(iso(9, 0)),
				Breaks:  []model.BreakInterval{{Start: iso(9, 30)}},
			},
			expected: StatusOnBreak,
		},
		{
			name: "Clocked out wins over open break",
			record: &model.AttendanceRecord{
				Date:     "2024-01-10",
				ClockIn:  utils.Ptr(iso(9, 0)),
				ClockOut: utils.Ptr(iso(10, 0)),
				Breaks:   []model.BreakInterval{{Start: iso(9, 30)}},
			},
			expected: StatusClockedOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.record, ts(10, 30))
			assert.Equal(t, tt.expected, got.Status)
		})
	}
}

func TestLiveNetMinutes(t *testing.T) {
	// Clock in at 09:00, still open: net minutes follow the supplied now.
	r := &model.AttendanceRecord{
		Date:    "2024-01-10",
		ClockIn: utils.Ptr(iso(9, 0)),
	}

	assert.Equal(t, 30, NetWorkMinutes(r, ts(9, 30)))
	assert.Equal(t, 90, NetWorkMinutes(r, ts(10, 30)))

	got := Derive(r, ts(9, 30))
	assert.Equal(t, StatusWorking, got.Status)
	assert.True(t, got.IsWorking)
	assert.False(t, got.IsOnBreak)
	assert.Equal(t, 30, got.NetWorkMinutes)
}

func TestOpenBreakContributesNothing(t *testing.T) {
	r := &model.AttendanceRecord{
		Date:    "2024-01-10",
		ClockIn: utils.Ptr(iso(9, 0)),
		Breaks: []model.BreakInterval{
			{Start: iso(9, 30), End: utils.Ptr(iso(9, 45))},
			{Start: iso(9, 50)},
		},
	}

	assert.Equal(t, 15, BreakMinutes(r))
	// Gross keeps running; the open break only counts once closed.
	assert.Equal(t, 60, GrossWorkMinutes(r, ts(10, 0)))
	assert.Equal(t, 45, NetWorkMinutes(r, ts(10, 0)))
}

func TestNetNeverNegative(t *testing.T) {
	r := &model.AttendanceRecord{
		Date:     "2024-01-10",
		ClockIn:  utils.Ptr(iso(9, 0)),
		ClockOut: utils.Ptr(iso(9, 10)),
		Breaks: []model.BreakInterval{
			{Start: iso(9, 0), End: utils.Ptr(iso(9, 30))},
		},
	}

	assert.Equal(t, 0, NetWorkMinutes(r, ts(9, 10)))

	// Live record at various nows from clock-in onward.
	open := &model.AttendanceRecord{Date: "2024-01-10", ClockIn: utils.Ptr(iso(9, 0))}
	for _, now := range []time.Time{ts(9, 0), ts(9, 1), ts(12, 0), ts(23, 59)} {
		assert.GreaterOrEqual(t, NetWorkMinutes(open, now), 0)
	}
}

func TestDeriveUnclockedRecordIsZero(t *testing.T) {
	got := Derive(model.NewRecord("2024-01-10"), ts(15, 0))
	assert.Equal(t, 0, got.GrossWorkMinutes)
	assert.Equal(t, 0, got.BreakMinutes)
	assert.Equal(t, 0, got.NetWorkMinutes)
	assert.False(t, got.IsWorking)
}
