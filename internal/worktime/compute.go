package worktime

import (
	"time"

	"github.com/pokemogu/TimecardSystem-sub001/internal/schedule"
)

// DayInput is everything needed to derive one day's quantities: the
// day's punches, its resolved window and whether an approved leave
// governs the date.
type DayInput struct {
	ClockIn  *time.Time
	ClockOut *time.Time
	Window   *schedule.Window
	// LeaveApproved excludes the day from lateness/overtime penalties;
	// the absence is authorized whatever the punches say.
	LeaveApproved bool
}

// DayMetrics holds the derived quantities for one attendance day.
// EarlyOverTime/LateOverTime are nil when the punch or the window needed
// to compute them is missing.
type DayMetrics struct {
	WorkDuration  time.Duration
	EarlyOverTime *time.Duration // schedule start - clock-in; >0 early, <0 late
	LateOverTime  *time.Duration // clock-out - schedule end; >0 overtime, <0 early leave
	Late          bool
	EarlyLeave    bool
}

// truncateToMinute drops seconds before any arithmetic so sub-minute
// punch jitter never produces spurious lateness or overtime.
func truncateToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

func ComputeDay(in DayInput) DayMetrics {
	var m DayMetrics

	var ci, co *time.Time
	if in.ClockIn != nil {
		t := truncateToMinute(*in.ClockIn)
		ci = &t
	}
	if in.ClockOut != nil {
		t := truncateToMinute(*in.ClockOut)
		co = &t
	}

	if ci != nil && co != nil {
		m.WorkDuration = co.Sub(*ci)
	}

	if in.Window == nil || in.LeaveApproved {
		return m
	}

	if ci != nil {
		d := in.Window.Start.Sub(*ci)
		m.EarlyOverTime = &d
		m.Late = d < 0
	}
	if co != nil {
		d := co.Sub(in.Window.End)
		m.LateOverTime = &d
		m.EarlyLeave = d < 0
	}
	return m
}

// UserTotals is one period-aggregation row.
type UserTotals struct {
	UserID               string
	UserAccount          string
	UserName             string
	TotalLateCount       int
	TotalEarlyLeaveCount int
	TotalWorkTime        time.Duration
	TotalEarlyOverTime   time.Duration // positive parts only
	TotalLateOverTime    time.Duration // positive parts only
	TotalLeaveDays       float64
}

// Accumulate folds one day into the period totals. Only the positive
// portion of each overtime delta counts toward the overtime sums; the
// negative portion is what the tallies count.
func (t *UserTotals) Accumulate(m DayMetrics) {
	t.TotalWorkTime += m.WorkDuration
	if m.EarlyOverTime != nil && *m.EarlyOverTime > 0 {
		t.TotalEarlyOverTime += *m.EarlyOverTime
	}
	if m.LateOverTime != nil && *m.LateOverTime > 0 {
		t.TotalLateOverTime += *m.LateOverTime
	}
	if m.Late {
		t.TotalLateCount++
	}
	if m.EarlyLeave {
		t.TotalEarlyLeaveCount++
	}
}
