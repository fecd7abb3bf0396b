package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/pantau-go-api/internal/dto"
	"github.com/noah-isme/pantau-go-api/internal/models"
	"github.com/noah-isme/pantau-go-api/internal/observability"
	"github.com/noah-isme/pantau-go-api/internal/repository"
)

var (
	// ErrInterventionNotFound indicates the targeted intervention id does not exist.
	ErrInterventionNotFound = errors.New("intervention not found")
	// ErrEmptyTask indicates the task text was empty after sanitization.
	ErrEmptyTask = errors.New("task must not be empty")
)

// InterventionService owns the assignment and completion transitions of a
// student's active intervention, updating the student's status as a side
// effect.
type InterventionService interface {
	Assign(ctx context.Context, payload dto.AssignInterventionRequest) (dto.InterventionResponse, error)
	Complete(ctx context.Context, payload dto.MarkCompleteRequest) (dto.MarkCompleteResponse, error)
}

type interventionService struct {
	students      repository.StudentRepository
	interventions repository.InterventionRepository
	cache         *StatusCache
	validator     *validator.Validate
	sanitizer     *bluemonday.Policy
	logger        zerolog.Logger
	tracer        trace.Tracer
	now           func() time.Time
}

// NewInterventionService constructs an InterventionService instance.
func NewInterventionService(students repository.StudentRepository, interventions repository.InterventionRepository, cache *StatusCache, validate *validator.Validate, logger zerolog.Logger) InterventionService {
	return &interventionService{
		students:      students,
		interventions: interventions,
		cache:         cache,
		validator:     validate,
		sanitizer:     bluemonday.StrictPolicy(),
		logger:        logger.With().Str("component", "intervention_service").Logger(),
		tracer:        otel.Tracer("github.com/noah-isme/pantau-go-api/internal/service/intervention"),
		now:           time.Now,
	}
}

// Assign attaches the mentor's task to the targeted intervention. When no
// intervention id is given the student's active intervention is used,
// created pending first if necessary. A nonexistent explicit id surfaces
// ErrInterventionNotFound and leaves the student's status untouched.
func (s *interventionService) Assign(ctx context.Context, payload dto.AssignInterventionRequest) (dto.InterventionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterventionResponse{}, err
	}

	task := strings.TrimSpace(s.sanitizer.Sanitize(payload.Task))
	if task == "" {
		return dto.InterventionResponse{}, ErrEmptyTask
	}

	spanCtx, span := s.tracer.Start(ctx, "intervention.assign", trace.WithAttributes(
		attribute.String("intervention.student_id", payload.StudentID),
		attribute.Bool("intervention.explicit_id", payload.InterventionID != nil),
	))
	defer span.End()

	if err := s.students.Ensure(spanCtx, payload.StudentID); err != nil {
		span.RecordError(err)
		return dto.InterventionResponse{}, err
	}

	var (
		intervention models.Intervention
		err          error
	)
	if payload.InterventionID != nil {
		intervention, err = s.interventions.GetByID(spanCtx, *payload.InterventionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.InterventionResponse{}, ErrInterventionNotFound
			}
			span.RecordError(err)
			return dto.InterventionResponse{}, err
		}
	} else {
		intervention, err = s.interventions.GetOrCreateActive(spanCtx, payload.StudentID)
		if err != nil {
			span.RecordError(err)
			return dto.InterventionResponse{}, err
		}
	}

	intervention.Task = &task
	intervention.Status = models.InterventionStatusAssigned
	if err := s.interventions.Update(spanCtx, &intervention); err != nil {
		span.RecordError(err)
		return dto.InterventionResponse{}, err
	}

	if err := s.students.UpdateStatus(spanCtx, payload.StudentID, models.StudentStatusRemedial); err != nil {
		span.RecordError(err)
		return dto.InterventionResponse{}, err
	}

	s.cache.Invalidate(spanCtx, payload.StudentID)
	observability.InterventionTransitions().WithLabelValues("assigned").Inc()
	s.logger.Info().
		Str("student_id", payload.StudentID).
		Uint("intervention_id", intervention.ID).
		Msg("intervention assigned")

	return dto.NewInterventionResponse(intervention), nil
}

// Complete closes the student's active intervention and unlocks the
// student. When no intervention is active the student is still forced back
// to On Track.
func (s *interventionService) Complete(ctx context.Context, payload dto.MarkCompleteRequest) (dto.MarkCompleteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MarkCompleteResponse{}, err
	}

	if err := s.students.Ensure(ctx, payload.StudentID); err != nil {
		return dto.MarkCompleteResponse{}, err
	}

	intervention, err := s.interventions.CompleteActive(ctx, payload.StudentID, s.now())
	switch {
	case err == nil:
		observability.InterventionTransitions().WithLabelValues("completed").Inc()
		s.logger.Info().
			Str("student_id", payload.StudentID).
			Uint("intervention_id", intervention.ID).
			Msg("intervention completed")
	case errors.Is(err, gorm.ErrRecordNotFound):
		// nothing active, the student is unlocked regardless
	default:
		return dto.MarkCompleteResponse{}, err
	}

	if err := s.students.UpdateStatus(ctx, payload.StudentID, models.StudentStatusOnTrack); err != nil {
		return dto.MarkCompleteResponse{}, err
	}

	s.cache.Invalidate(ctx, payload.StudentID)

	return dto.MarkCompleteResponse{OK: true, Status: models.StudentStatusOnTrack}, nil
}
