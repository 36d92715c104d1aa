package core

import (
	"time"

	"github.com/kintai-app/kintai/model"
	"github.com/kintai-app/kintai/utils"
)

type Status string

const (
	StatusNotClockedIn Status = "not_clocked_in"
	StatusWorking      Status = "working"
	StatusOnBreak      Status = "on_break"
	StatusClockedOut   Status = "clocked_out"
)

// DerivedStatus is the snapshot view of one record against a wall clock.
// Net minutes keep moving while the day is open, so callers must derive
// again with a fresh now on every display; nothing here is cached on the
// record.
type DerivedStatus struct {
	Status           Status `json:"status"`
	IsWorking        bool   `json:"isWorking"`
	IsOnBreak        bool   `json:"isOnBreak"`
	GrossWorkMinutes int    `json:"grossWorkMinutes"`
	BreakMinutes     int    `json:"breakMinutes"`
	NetWorkMinutes   int    `json:"netWorkMinutes"`
}

// Derive computes the full status snapshot for a record.
func Derive(r *model.AttendanceRecord, now time.Time) DerivedStatus {
	isWorking := r.ClockIn != nil && r.ClockOut == nil
	isOnBreak := isWorking && r.OnBreak()

	var status Status
	switch {
	case r.ClockIn == nil:
		status = StatusNotClockedIn
	case r.ClockOut != nil:
		// Terminal: the record is never reopened for the day.
		status = StatusClockedOut
	case isOnBreak:
		status = StatusOnBreak
	default:
		status = StatusWorking
	}

	gross := GrossWorkMinutes(r, now)
	brk := BreakMinutes(r)
	return DerivedStatus{
		Status:           status,
		IsWorking:        isWorking,
		IsOnBreak:        isOnBreak,
		GrossWorkMinutes: gross,
		BreakMinutes:     brk,
		NetWorkMinutes:   NetWorkMinutes(r, now),
	}
}

// GrossWorkMinutes measures clock-in to clock-out, or to now while the
// day is still open.
func GrossWorkMinutes(r *model.AttendanceRecord, now time.Time) int {
	if r.ClockIn == nil {
		return 0
	}
	if r.ClockOut != nil {
		return utils.MinutesBetweenISO(*r.ClockIn, *r.ClockOut)
	}
	start, err := utils.ParseISOTime(*r.ClockIn)
	if err != nil {
		return 0
	}
	return utils.MinutesBetween(*start, now)
}

// BreakMinutes sums closed break intervals. An open break contributes
// nothing until it is closed.
func BreakMinutes(r *model.AttendanceRecord) int {
	total := 0
	for _, b := range r.Breaks {
		if b.Start != "" && b.End != nil {
			total += utils.MinutesBetweenISO(b.Start, *b.End)
		}
	}
	return total
}

// NetWorkMinutes is gross minus breaks, clamped at zero.
func NetWorkMinutes(r *model.AttendanceRecord, now time.Time) int {
	net := GrossWorkMinutes(r, now) - BreakMinutes(r)
	if net < 0 {
		return 0
	}
	return net
}
