package core

import (
	"sort"
	"strings"
	"time"

	"github.com/kintai-app/kintai/model"
	"github.com/kintai-app/kintai/utils"
)

// MonthlySummary aggregates settled records only. An open today-record
// shows up in the detail rows but never in these totals.
type MonthlySummary struct {
	Year              int `json:"year"`
	Month             int `json:"month"`
	WorkDays          int `json:"workDays"`
	TotalWorkMinutes  int `json:"totalWorkMinutes"`
	TotalBreakMinutes int `json:"totalBreakMinutes"`
	AvgWorkMinutes    int `json:"avgWorkMinutes"`
}

// MonthRecords filters the set to one month, date ascending.
func MonthRecords(set model.RecordSet, year, month int) []*model.AttendanceRecord {
	prefix := utils.MonthKey(year, month)
	out := utils.Filter(set, func(r *model.AttendanceRecord) bool {
		return strings.HasPrefix(r.Date, prefix)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Summarize computes the monthly totals. now is irrelevant for settled
// records (both ends are fixed) but required by the derivation signature;
// the zero time is fine.
func Summarize(set model.RecordSet, year, month int) MonthlySummary {
	settled := utils.Filter(MonthRecords(set, year, month), (*model.AttendanceRecord).Settled)

	s := MonthlySummary{Year: year, Month: month, WorkDays: len(settled)}
	for _, r := range settled {
		s.TotalWorkMinutes += NetWorkMinutes(r, time.Time{})
		s.TotalBreakMinutes += BreakMinutes(r)
	}
	if s.WorkDays > 0 {
		s.AvgWorkMinutes = s.TotalWorkMinutes / s.WorkDays
	}
	return s
}
