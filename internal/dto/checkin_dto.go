package dto

// CheckInRequest is the body of the daily check-in endpoint. The numeric
// fields are pointers so a missing field fails validation instead of
// defaulting to zero.
type CheckInRequest struct {
	StudentID    string   `json:"student_id" validate:"required"`
	QuizScore    *float64 `json:"quiz_score" validate:"required"`
	FocusMinutes *float64 `json:"focus_minutes" validate:"required"`
}

// CheckInResponse reports the externally visible outcome of a check-in:
// "On Track" on success, "Pending Mentor Review" on failure.
type CheckInResponse struct {
	Status string `json:"status"`
}
