package models

import "time"

// Intervention represents a corrective task opened when a student fails a
// daily check-in. At most one intervention per student may be active
// (pending or assigned) at any time; the storage layer enforces this.
type Intervention struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StudentID   string     `gorm:"size:255;not null;index" json:"student_id"`
	Task        *string    `gorm:"type:text" json:"task"`
	Status      string     `gorm:"size:32;not null" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

const (
	// InterventionStatusPending indicates the intervention awaits a mentor task.
	InterventionStatusPending = "pending"
	// InterventionStatusAssigned indicates a mentor has attached a task.
	InterventionStatusAssigned = "assigned"
	// InterventionStatusCompleted indicates the task has been finished.
	InterventionStatusCompleted = "completed"
)

// IsActive reports whether the intervention still blocks the student.
func (i Intervention) IsActive() bool {
	return i.Status == InterventionStatusPending || i.Status == InterventionStatusAssigned
}
