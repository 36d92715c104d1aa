package model

import "fmt"

// BreakInterval is one break within a working day. End is nil while the
// break is in progress; an open interval is always the last element of
// the record's break sequence.
type BreakInterval struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

func (b BreakInterval) IsOpen() bool {
	return b.End == nil
}

// AttendanceRecord is one user-day of attendance. ClockIn/ClockOut are
// RFC3339 timestamps, nil until the corresponding event happens. The ID
// starts as the provisional "rec-<date>" and may be replaced by the
// remote document key after the first remote load.
type AttendanceRecord struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"` // YYYY-MM-DD
	ClockIn  *string         `json:"clockIn"`
	ClockOut *string         `json:"clockOut"`
	Breaks   []BreakInterval `json:"breaks"`
}

// ProvisionalID derives the identifier a record carries before the remote
// store has seen it.
func ProvisionalID(date string) string {
	return fmt.Sprintf("rec-%s", date)
}

// NewRecord materializes an empty record for a calendar day.
func NewRecord(date string) *AttendanceRecord {
	return &AttendanceRecord{
		ID:     ProvisionalID(date),
		Date:   date,
		Breaks: []BreakInterval{},
	}
}

// LastBreak returns the most recent break interval, or nil if none exist.
func (r *AttendanceRecord) LastBreak() *BreakInterval {
	if len(r.Breaks) == 0 {
		return nil
	}
	return &r.Breaks[len(r.Breaks)-1]
}

// OnBreak reports whether the record currently has an open break.
func (r *AttendanceRecord) OnBreak() bool {
	last := r.LastBreak()
	return last != nil && last.IsOpen()
}

// Settled reports whether the day is complete and may contribute to
// monthly totals.
func (r *AttendanceRecord) Settled() bool {
	return r.ClockIn != nil && r.ClockOut != nil
}

// Clone returns a deep copy. The applier copies before mutating so that
// untouched records can be shared between successive sets.
func (r *AttendanceRecord) Clone() *AttendanceRecord {
	out := &AttendanceRecord{
		ID:     r.ID,
		Date:   r.Date,
		Breaks: make([]BreakInterval, len(r.Breaks)),
	}
	if r.ClockIn != nil {
		v := *r.ClockIn
		out.ClockIn = &v
	}
	if r.ClockOut != nil {
		v := *r.ClockOut
		out.ClockOut = &v
	}
	for i, b := range r.Breaks {
		nb := BreakInterval{Start: b.Start}
		if b.End != nil {
			v := *b.End
			nb.End = &v
		}
		out.Breaks[i] = nb
	}
	return out
}

// RecordSet is a user's full collection of attendance records, unique by
// date. Order is not significant; callers sort for display.
type RecordSet []*AttendanceRecord

// ByDate finds the record for a calendar day, or nil.
func (s RecordSet) ByDate(date string) *AttendanceRecord {
	for _, r := range s {
		if r.Date == date {
			return r
		}
	}
	return nil
}
