package models

import "time"

// DailyLog is an append-only audit record of a single check-in. Rows are
// never read back by the state machine and never mutated.
type DailyLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    string    `gorm:"size:255;not null;index" json:"student_id"`
	QuizScore    float64   `gorm:"not null" json:"quiz_score"`
	FocusMinutes float64   `gorm:"not null" json:"focus_minutes"`
	Status       string    `gorm:"size:16;not null" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	// DailyLogStatusSuccess marks a check-in that met both thresholds.
	DailyLogStatusSuccess = "success"
	// DailyLogStatusFailed marks a check-in that missed either threshold.
	DailyLogStatusFailed = "failed"
)
