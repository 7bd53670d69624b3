package schedule

type CreatePatternRequest struct {
	Name          string `json:"name" binding:"required"`
	OnDutyMinute  int    `json:"onduty_minute" binding:"min=0,max=1440"`
	OffDutyMinute int    `json:"offduty_minute" binding:"required,min=1,max=2880"`
}

type PatternResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OnDutyMinute  int    `json:"onduty_minute"`
	OffDutyMinute int    `json:"offduty_minute"`
}

type UpsertOverrideRequest struct {
	WorkPatternID *string  `json:"work_pattern_id"`
	AbsenceRate   *float64 `json:"absence_rate"`
}

type OverrideResponse struct {
	UserID        string  `json:"user_id"`
	Date          string  `json:"date"`
	WorkPatternID *string `json:"work_pattern_id,omitempty"`
	AbsenceRate   float64 `json:"absence_rate,omitempty"`
}
