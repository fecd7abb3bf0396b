package dto

import (
	"time"

	"github.com/noah-isme/pantau-go-api/internal/models"
)

// AssignInterventionRequest is the body of the assign endpoint. When
// InterventionID is absent the student's active intervention is targeted,
// creating a pending one if necessary.
type AssignInterventionRequest struct {
	StudentID      string `json:"student_id" validate:"required"`
	InterventionID *uint  `json:"intervention_id"`
	Task           string `json:"task" validate:"required"`
}

// MarkCompleteRequest is the body of the completion endpoint.
type MarkCompleteRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// InterventionResponse is the wire representation of an intervention.
type InterventionResponse struct {
	ID          uint       `json:"id"`
	StudentID   string     `json:"student_id"`
	Task        *string    `json:"task"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// AssignInterventionResponse wraps the updated intervention.
type AssignInterventionResponse struct {
	OK           bool                 `json:"ok"`
	Intervention InterventionResponse `json:"intervention"`
}

// MarkCompleteResponse reports the student's unlocked status.
type MarkCompleteResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// NewInterventionResponse maps a model onto its wire representation.
func NewInterventionResponse(intervention models.Intervention) InterventionResponse {
	return InterventionResponse{
		ID:          intervention.ID,
		StudentID:   intervention.StudentID,
		Task:        intervention.Task,
		Status:      intervention.Status,
		CreatedAt:   intervention.CreatedAt,
		CompletedAt: intervention.CompletedAt,
	}
}
