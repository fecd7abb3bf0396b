package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/pantau-go-api/internal/dto"
	"github.com/noah-isme/pantau-go-api/internal/repository"
)

// ErrStudentNotFound indicates the requested student has never checked in.
var ErrStudentNotFound = errors.New("student not found")

// StudentStatusService resolves a student's current status together with the
// task of their active intervention, if any.
type StudentStatusService interface {
	Get(ctx context.Context, studentID string) (dto.StudentStatusResponse, error)
}

type studentStatusService struct {
	students      repository.StudentRepository
	interventions repository.InterventionRepository
	cache         *StatusCache
	logger        zerolog.Logger
}

// NewStudentStatusService builds the status lookup service.
func NewStudentStatusService(students repository.StudentRepository, interventions repository.InterventionRepository, cache *StatusCache, logger zerolog.Logger) StudentStatusService {
	return &studentStatusService{
		students:      students,
		interventions: interventions,
		cache:         cache,
		logger:        logger.With().Str("component", "status_service").Logger(),
	}
}

func (s *studentStatusService) Get(ctx context.Context, studentID string) (dto.StudentStatusResponse, error) {
	if cached, ok := s.cache.Get(ctx, studentID); ok {
		s.logger.Debug().Str("student_id", studentID).Msg("status cache hit")
		return cached, nil
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentStatusResponse{}, ErrStudentNotFound
		}
		return dto.StudentStatusResponse{}, err
	}

	response := dto.StudentStatusResponse{
		StudentID: student.ID,
		Status:    student.Status,
	}

	intervention, err := s.interventions.FindActive(ctx, studentID)
	switch {
	case err == nil:
		response.Task = intervention.Task
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no active intervention, task stays null
	default:
		return dto.StudentStatusResponse{}, err
	}

	s.cache.Set(ctx, studentID, response)

	return response, nil
}
