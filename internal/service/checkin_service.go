package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/pantau-go-api/internal/dto"
	"github.com/noah-isme/pantau-go-api/internal/models"
	"github.com/noah-isme/pantau-go-api/internal/observability"
	"github.com/noah-isme/pantau-go-api/internal/repository"
)

// StatusPendingMentorReview is the externally reported outcome of a failed
// check-in. The stored student status is Needs Intervention; the check-in
// response deliberately reports the pending-review wording instead.
const StatusPendingMentorReview = "Pending Mentor Review"

// CheckInService runs the daily check-in flow: audit log, status
// transition, and on failure the get-or-create of the student's active
// intervention plus the workflow notification.
type CheckInService interface {
	Record(ctx context.Context, payload dto.CheckInRequest) (dto.CheckInResponse, error)
}

type checkInService struct {
	students      repository.StudentRepository
	interventions repository.InterventionRepository
	logs          repository.DailyLogRepository
	notifier      Notifier
	cache         *StatusCache
	validator     *validator.Validate
	logger        zerolog.Logger
	tracer        trace.Tracer
}

// NewCheckInService constructs a CheckInService instance.
func NewCheckInService(students repository.StudentRepository, interventions repository.InterventionRepository, logs repository.DailyLogRepository, notifier Notifier, cache *StatusCache, validate *validator.Validate, logger zerolog.Logger) CheckInService {
	return &checkInService{
		students:      students,
		interventions: interventions,
		logs:          logs,
		notifier:      notifier,
		cache:         cache,
		validator:     validate,
		logger:        logger.With().Str("component", "checkin_service").Logger(),
		tracer:        otel.Tracer("github.com/noah-isme/pantau-go-api/internal/service/checkin"),
	}
}

func (s *checkInService) Record(ctx context.Context, payload dto.CheckInRequest) (dto.CheckInResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CheckInResponse{}, err
	}

	quizScore := *payload.QuizScore
	focusMinutes := *payload.FocusMinutes

	spanCtx, span := s.tracer.Start(ctx, "checkin.record", trace.WithAttributes(
		attribute.String("checkin.student_id", payload.StudentID),
		attribute.Float64("checkin.quiz_score", quizScore),
		attribute.Float64("checkin.focus_minutes", focusMinutes),
	))
	defer span.End()

	if err := s.students.Ensure(spanCtx, payload.StudentID); err != nil {
		span.RecordError(err)
		return dto.CheckInResponse{}, err
	}

	log := models.DailyLog{
		StudentID:    payload.StudentID,
		QuizScore:    quizScore,
		FocusMinutes: focusMinutes,
		Status:       DailyLogStatus(quizScore, focusMinutes),
	}
	if err := s.logs.Append(spanCtx, &log); err != nil {
		span.RecordError(err)
		return dto.CheckInResponse{}, err
	}

	defer s.cache.Invalidate(spanCtx, payload.StudentID)

	if EvaluateCheckIn(quizScore, focusMinutes) {
		if err := s.students.UpdateStatus(spanCtx, payload.StudentID, models.StudentStatusOnTrack); err != nil {
			span.RecordError(err)
			return dto.CheckInResponse{}, err
		}

		observability.CheckIns().WithLabelValues("success").Inc()
		s.logger.Info().Str("student_id", payload.StudentID).Msg("check-in passed")

		return dto.CheckInResponse{Status: models.StudentStatusOnTrack}, nil
	}

	if err := s.students.UpdateStatus(spanCtx, payload.StudentID, models.StudentStatusNeedsIntervention); err != nil {
		span.RecordError(err)
		return dto.CheckInResponse{}, err
	}

	intervention, err := s.interventions.GetOrCreateActive(spanCtx, payload.StudentID)
	if err != nil {
		span.RecordError(err)
		return dto.CheckInResponse{}, err
	}

	observability.CheckIns().WithLabelValues("failure").Inc()
	s.logger.Info().
		Str("student_id", payload.StudentID).
		Uint("intervention_id", intervention.ID).
		Msg("check-in failed, intervention pending mentor review")

	// Best-effort dispatch off the request path. The detached context keeps
	// request-scoped values but outlives the HTTP response.
	go s.notifier.NotifyFailure(context.WithoutCancel(spanCtx), CheckInFailedEvent{
		StudentID:      payload.StudentID,
		QuizScore:      quizScore,
		FocusMinutes:   focusMinutes,
		InterventionID: intervention.ID,
	})

	return dto.CheckInResponse{Status: StatusPendingMentorReview}, nil
}
