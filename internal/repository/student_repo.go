package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/pantau-go-api/internal/models"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	// Ensure upserts the student with status On Track if absent. It never
	// overwrites the status of an existing row.
	Ensure(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (models.Student, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository backed by GORM.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Ensure(ctx context.Context, id string) error {
	student := models.Student{ID: id, Status: models.StudentStatusOnTrack}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Update("status", status).Error
}
