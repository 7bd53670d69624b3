package worktime

type WorkTimeQuery struct {
	DateFrom    string `form:"date_from" binding:"required"`
	DateTo      string `form:"date_to" binding:"required"`
	UserAccount string `form:"user_account"`
}

// WorkTimeRow is one per-user aggregate row. Durations are reported in
// whole minutes.
type WorkTimeRow struct {
	UserID               string  `json:"user_id"`
	UserAccount          string  `json:"user_account"`
	UserName             string  `json:"user_name"`
	Section              string  `json:"section,omitempty"`
	Department           string  `json:"department,omitempty"`
	TotalLateCount       int     `json:"total_late_count"`
	TotalEarlyLeaveCount int     `json:"total_early_leave_count"`
	TotalWorkTime        int     `json:"total_work_time"`
	TotalEarlyOverTime   int     `json:"total_early_over_time"`
	TotalLateOverTime    int     `json:"total_late_over_time"`
	TotalLeaveDays       float64 `json:"total_leave_days"`
}
