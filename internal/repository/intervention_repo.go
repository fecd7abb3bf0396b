package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/pantau-go-api/internal/models"
)

var activeStatuses = []string{models.InterventionStatusPending, models.InterventionStatusAssigned}

// InterventionRepository handles persistence for intervention records. It is
// the only component allowed to create or transition interventions.
type InterventionRepository interface {
	GetByID(ctx context.Context, id uint) (models.Intervention, error)
	// FindActive returns the pending or assigned intervention for the
	// student, preferring the most recently created should more than one
	// exist. Returns gorm.ErrRecordNotFound when none is active.
	FindActive(ctx context.Context, studentID string) (models.Intervention, error)
	// GetOrCreateActive returns the active intervention for the student,
	// creating a pending one if none exists. The check-then-create is atomic
	// with respect to concurrent callers.
	GetOrCreateActive(ctx context.Context, studentID string) (models.Intervention, error)
	Update(ctx context.Context, intervention *models.Intervention) error
	// CompleteActive transitions the student's active intervention to
	// completed. Returns gorm.ErrRecordNotFound when no intervention is
	// active.
	CompleteActive(ctx context.Context, studentID string, completedAt time.Time) (models.Intervention, error)
}

type interventionRepository struct {
	db *gorm.DB
}

// NewInterventionRepository constructs an intervention repository backed by GORM.
func NewInterventionRepository(db *gorm.DB) InterventionRepository {
	return &interventionRepository{db: db}
}

func (r *interventionRepository) GetByID(ctx context.Context, id uint) (models.Intervention, error) {
	var intervention models.Intervention
	if err := r.db.WithContext(ctx).First(&intervention, id).Error; err != nil {
		return models.Intervention{}, err
	}
	return intervention, nil
}

func (r *interventionRepository) FindActive(ctx context.Context, studentID string) (models.Intervention, error) {
	var intervention models.Intervention
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND status IN ?", studentID, activeStatuses).
		Order("created_at DESC").
		First(&intervention).Error
	if err != nil {
		return models.Intervention{}, err
	}

	return intervention, nil
}

// The insert is guarded by the partial unique index installed by
// database.Migrate; a concurrent creator loses with a duplicate-key error
// and re-reads the winner's row.
func (r *interventionRepository) GetOrCreateActive(ctx context.Context, studentID string) (models.Intervention, error) {
	existing, err := r.FindActive(ctx, studentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Intervention{}, err
	}

	created := models.Intervention{
		StudentID: studentID,
		Status:    models.InterventionStatusPending,
	}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindActive(ctx, studentID)
		}
		return models.Intervention{}, err
	}

	return created, nil
}

func (r *interventionRepository) Update(ctx context.Context, intervention *models.Intervention) error {
	return r.db.WithContext(ctx).Save(intervention).Error
}

func (r *interventionRepository) CompleteActive(ctx context.Context, studentID string, completedAt time.Time) (models.Intervention, error) {
	intervention, err := r.FindActive(ctx, studentID)
	if err != nil {
		return models.Intervention{}, err
	}

	intervention.Status = models.InterventionStatusCompleted
	intervention.CompletedAt = &completedAt
	if err := r.db.WithContext(ctx).Save(&intervention).Error; err != nil {
		return models.Intervention{}, err
	}

	return intervention, nil
}
