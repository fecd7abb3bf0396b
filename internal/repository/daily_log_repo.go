package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/pantau-go-api/internal/models"
)

// DailyLogRepository appends check-in audit rows. Logs are write-only.
type DailyLogRepository interface {
	Append(ctx context.Context, log *models.DailyLog) error
}

type dailyLogRepository struct {
	db *gorm.DB
}

// NewDailyLogRepository constructs a daily log repository backed by GORM.
func NewDailyLogRepository(db *gorm.DB) DailyLogRepository {
	return &dailyLogRepository{db: db}
}

func (r *dailyLogRepository) Append(ctx context.Context, log *models.DailyLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
