package dto

// StudentStatusResponse is the payload of the status lookup endpoint. Task
// carries the active intervention's task and serializes as null when the
// student has no active intervention or it has no task yet.
type StudentStatusResponse struct {
	StudentID string  `json:"student_id"`
	Status    string  `json:"status"`
	Task      *string `json:"task"`
}
