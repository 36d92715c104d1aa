package core

import (
	"time"

	"github.com/kintai-app/kintai/model"
	"github.com/kintai-app/kintai/utils"
)

type Action string

const (
	ActionClockIn    Action = "clock_in"
	ActionClockOut   Action = "clock_out"
	ActionStartBreak Action = "start_break"
	ActionEndBreak   Action = "end_break"
)

// Apply is the state-transition core: current set + action + now gives the
// next set. Disallowed actions are no-ops, never errors. Untouched records
// are shared between the old and new set; only today's record is copied
// before mutation. now is sampled once by the caller so every timestamp
// written by a single action agrees.
func Apply(set model.RecordSet, action Action, now time.Time) model.RecordSet {
	set = EnsureDate(set, utils.DateKey(now))
	today := utils.DateKey(now)
	iso := utils.FormatISO(now)

	out := make(model.RecordSet, len(set))
	for i, r := range set {
		if r.Date != today {
			out[i] = r
			continue
		}
		out[i] = applyToRecord(r, action, iso)
	}
	return out
}

func applyToRecord(r *model.AttendanceRecord, action Action, iso string) *model.AttendanceRecord {
	switch action {
	case ActionClockIn:
		if r.ClockIn != nil {
			// Already clocked in today; a second attempt changes nothing.
			return r
		}
		next := r.Clone()
		next.ClockIn = &iso
		next.ClockOut = nil
		// A reused identifier may carry stale breaks; clock-in resets them.
		next.Breaks = []model.BreakInterval{}
		return next

	case ActionClockOut:
		if r.ClockIn == nil || r.ClockOut != nil {
			return r
		}
		next := r.Clone()
		if last := next.LastBreak(); last != nil && last.IsOpen() {
			// Clock-out implicitly ends an in-progress break.
			last.End = &iso
		}
		next.ClockOut = &iso
		return next

	case ActionStartBreak:
		if r.ClockIn == nil || r.ClockOut != nil || r.OnBreak() {
			return r
		}
		next := r.Clone()
		next.Breaks = append(next.Breaks, model.BreakInterval{Start: iso})
		return next

	case ActionEndBreak:
		if r.ClockIn == nil || r.ClockOut != nil || !r.OnBreak() {
			return r
		}
		next := r.Clone()
		next.LastBreak().End = &iso
		return next
	}

	return r
}

// EnsureDate lazily materializes the record for a calendar day. It is a
// fixed point: once the day exists the same set comes back unchanged, so
// change-triggered callers converge instead of looping.
func EnsureDate(set model.RecordSet, date string) model.RecordSet {
	if set.ByDate(date) != nil {
		return set
	}
	out := make(model.RecordSet, 0, len(set)+1)
	out = append(out, set...)
	out = append(out, model.NewRecord(date))
	return out
}

// DefaultSet is the fallback state when neither cache nor remote yields
// anything usable: a single fresh record for today.
func DefaultSet(now time.Time) model.RecordSet {
	return model.RecordSet{model.NewRecord(utils.DateKey(now))}
}
