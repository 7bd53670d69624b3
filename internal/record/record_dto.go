package record

type SubmitPunchRequest struct {
	UserAccount   string  `json:"user_account" binding:"required"`
	Kind          string  `json:"kind" binding:"required"`
	Timestamp     string  `json:"timestamp" binding:"required"` // RFC 3339
	DeviceAccount *string `json:"device_account"`
	ApplyID       *string `json:"apply_id"`
}

type QueryRecordsRequest struct {
	UserAccount string `form:"user_account"`
	UserName    string `form:"user_name"`
	Section     string `form:"section"`
	Department  string `form:"department"`
	DeviceName  string `form:"device_name"`
	DateFrom    string `form:"date_from"`
	DateTo      string `form:"date_to"`
	SortBy      string `form:"sort_by"` // date | account | name | section | department
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}

type SlotResponse struct {
	Timestamp  string `json:"timestamp,omitempty"`
	DeviceName string `json:"device_name,omitempty"`
	ApplyID    string `json:"apply_id,omitempty"`
	ApplyType  string `json:"apply_type,omitempty"`
}

type RecordResponse struct {
	UserID      string        `json:"user_id"`
	UserAccount string        `json:"user_account"`
	UserName    string        `json:"user_name"`
	Section     string        `json:"section,omitempty"`
	Department  string        `json:"department,omitempty"`
	Date        string        `json:"date"`
	ClockIn     *SlotResponse `json:"clock_in,omitempty"`
	BreakStart  *SlotResponse `json:"break_start,omitempty"`
	BreakResume *SlotResponse `json:"break_resume,omitempty"`
	ClockOut    *SlotResponse `json:"clock_out,omitempty"`
	Unmatched   bool          `json:"unmatched,omitempty"`
}
