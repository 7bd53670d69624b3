package record

type PunchKind string

const (
	KindClockIn     PunchKind = "clock-in"
	KindBreakStart  PunchKind = "break-start"
	KindBreakResume PunchKind = "break-resume"
	KindClockOut    PunchKind = "clock-out"
)

func ParsePunchKind(v string) (PunchKind, bool) {
	switch PunchKind(v) {
	case KindClockIn, KindBreakStart, KindBreakResume, KindClockOut:
		return PunchKind(v), true
	default:
		return "", false
	}
}
