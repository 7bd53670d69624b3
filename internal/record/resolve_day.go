package record

import "time"

// HasClockInFn reports whether a record with a non-null clock-in already
// exists for the user on the given date.
type HasClockInFn func(date time.Time) (bool, error)

// ResolvePunchDate resolves which attendance day a punch belongs to.
//
// A clock-in always starts a new attendance day on its own calendar date.
// Any other kind first binds to a same-date clock-in, then to a
// previous-date clock-in (cross-midnight shift). When neither exists the
// punch stays on its own calendar date and is reported as unmatched
// rather than silently attributed.
func ResolvePunchDate(kind PunchKind, ts time.Time, hasClockIn HasClockInFn) (date time.Time, unmatched bool, err error) {
	day := truncateToDay(ts)
	if kind == KindClockIn {
		return day, false, nil
	}

	ok, err := hasClockIn(day)
	if err != nil {
		return time.Time{}, false, err
	}
	if ok {
		return day, false, nil
	}

	prev := day.AddDate(0, 0, -1)
	ok, err = hasClockIn(prev)
	if err != nil {
		return time.Time{}, false, err
	}
	if ok {
		return prev, false, nil
	}

	return day, true, nil
}

func truncateToDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
