package apply

// TypeInfo describes one request kind. ScheduleAffecting marks kinds
// whose approval changes the effective window or exempts the day from
// lateness/overtime penalties; DayAmount is the leave consumption a full
// approval charges (0 for non-leave kinds).
type TypeInfo struct {
	Code              string
	ScheduleAffecting bool
	DayAmount         float64
}

const (
	TypeLeave       = "leave"
	TypeHalfLeaveAM = "half-leave-am"
	TypeHalfLeavePM = "half-leave-pm"
	TypeOvertime    = "overtime"
	TypeLateness    = "lateness"
	TypeHolidayWork = "holiday-work"
	TypeEarlyLeave  = "early-leave"
	TypeBreak       = "break"
)

// TypeRegistry is built once at startup and passed by reference into the
// services that need it; there is no process-global lookup table.
type TypeRegistry struct {
	byCode map[string]TypeInfo
}

func NewTypeRegistry() *TypeRegistry {
	infos := []TypeInfo{
		{Code: TypeLeave, ScheduleAffecting: true, DayAmount: 1.0},
		{Code: TypeHalfLeaveAM, ScheduleAffecting: true, DayAmount: 0.5},
		{Code: TypeHalfLeavePM, ScheduleAffecting: true, DayAmount: 0.5},
		{Code: TypeOvertime, ScheduleAffecting: false, DayAmount: 0},
		{Code: TypeLateness, ScheduleAffecting: true, DayAmount: 0},
		{Code: TypeHolidayWork, ScheduleAffecting: false, DayAmount: 0},
		{Code: TypeEarlyLeave, ScheduleAffecting: true, DayAmount: 0},
		{Code: TypeBreak, ScheduleAffecting: false, DayAmount: 0},
	}
	byCode := make(map[string]TypeInfo, len(infos))
	for _, info := range infos {
		byCode[info.Code] = info
	}
	return &TypeRegistry{byCode: byCode}
}

func (r *TypeRegistry) Lookup(code string) (TypeInfo, bool) {
	info, ok := r.byCode[code]
	return info, ok
}

// IsLeave reports whether an approval of this kind consumes leave days.
func (r *TypeRegistry) IsLeave(code string) bool {
	info, ok := r.byCode[code]
	return ok && info.DayAmount > 0
}
