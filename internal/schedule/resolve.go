package schedule

import (
	"math"
	"time"
)

// Window is the effective on-duty interval for one user on one date,
// as absolute instants in the date's location.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) SpanMinutes() int {
	return int(w.End.Sub(w.Start) / time.Minute)
}

// Resolve computes the effective window for a date.
//
// Precedence: an override that names a pattern wins outright (even on a
// weekend); otherwise the user's default pattern applies on weekdays and
// weekends are unscheduled. A nil return means "no schedule".
//
// An absence rate on the override shifts the window: positive rates delay
// the effective start (absent at shift start, arrives partway through),
// negative rates advance the effective end (leaves partway through).
func Resolve(date time.Time, defaultPattern *WorkPattern, ov *Override, ovPattern *WorkPattern) *Window {
	pattern := defaultPattern
	if ov != nil && ovPattern != nil {
		pattern = ovPattern
	} else if isWeekend(date) {
		return nil
	}
	if pattern == nil {
		return nil
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	w := &Window{
		Start: midnight.Add(time.Duration(pattern.OnDutyMinute) * time.Minute),
		End:   midnight.Add(time.Duration(pattern.OffDutyMinute) * time.Minute),
	}

	if ov != nil && ov.AbsenceRate != 0 {
		applyAbsenceRate(w, ov.AbsenceRate)
	}
	return w
}

// applyAbsenceRate is the single place the sign convention lives.
func applyAbsenceRate(w *Window, rate float64) {
	span := float64(w.SpanMinutes())
	shift := time.Duration(math.Round(math.Abs(rate)*span)) * time.Minute
	if rate > 0 {
		w.Start = w.Start.Add(shift)
	} else {
		w.End = w.End.Add(-shift)
	}
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
