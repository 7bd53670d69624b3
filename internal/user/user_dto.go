package user

type CreateUserRequest struct {
	Account       string  `json:"account" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Section       string  `json:"section"`
	Department    string  `json:"department"`
	WorkPatternID *string `json:"work_pattern_id"`
}

type UpdateUserRequest struct {
	Name          string  `json:"name" binding:"required"`
	Section       string  `json:"section"`
	Department    string  `json:"department"`
	WorkPatternID *string `json:"work_pattern_id"`
}

type UserResponse struct {
	ID            string  `json:"id"`
	Account       string  `json:"account"`
	Name          string  `json:"name"`
	Section       string  `json:"section,omitempty"`
	Department    string  `json:"department,omitempty"`
	WorkPatternID *string `json:"work_pattern_id,omitempty"`
}
