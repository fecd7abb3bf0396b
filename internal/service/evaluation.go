package service

import "github.com/noah-isme/pantau-go-api/internal/models"

// Check-in pass thresholds. Both bounds are exclusive: a quiz score of
// exactly 7 or a focus time of exactly 60 minutes fails.
const (
	PassingQuizScore    = 7
	PassingFocusMinutes = 60
)

// EvaluateCheckIn is the pure pass/fail rule for a daily check-in.
func EvaluateCheckIn(quizScore, focusMinutes float64) bool {
	return quizScore > PassingQuizScore && focusMinutes > PassingFocusMinutes
}

// DailyLogStatus derives the audit-trail status for a check-in using the
// same rule the state machine applies.
func DailyLogStatus(quizScore, focusMinutes float64) string {
	if EvaluateCheckIn(quizScore, focusMinutes) {
		return models.DailyLogStatusSuccess
	}
	return models.DailyLogStatusFailed
}
