package models

import "time"

// Student represents a learner tracked by the daily check-in state machine.
type Student struct {
	ID        string    `gorm:"primaryKey;size:255" json:"id"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// StudentStatusOnTrack indicates the student passed their latest check-in.
	StudentStatusOnTrack = "On Track"
	// StudentStatusNeedsIntervention indicates a failed check-in awaiting mentor review.
	StudentStatusNeedsIntervention = "Needs Intervention"
	// StudentStatusRemedial indicates a mentor has assigned a corrective task.
	StudentStatusRemedial = "Remedial"
)
