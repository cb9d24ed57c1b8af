package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/rela-go-api/internal/models"
)

// HourLogRepository supplies approved volunteer hour entries for the metrics engine.
type HourLogRepository interface {
	// ListApproved returns approved hour logs for the organization dated
	// within [from, to], with the owning volunteer preloaded.
	ListApproved(ctx context.Context, orgID uint, from, to time.Time) ([]models.HourLog, error)
	// ListApprovedByEvents returns approved hour logs tied to any of the
	// given events, regardless of date.
	ListApprovedByEvents(ctx context.Context, eventIDs []uint) ([]models.HourLog, error)
}

type hourLogRepository struct {
	db *gorm.DB
}

// NewHourLogRepository constructs the hour log repository.
func NewHourLogRepository(db *gorm.DB) HourLogRepository {
	return &hourLogRepository{db: db}
}

func (r *hourLogRepository) ListApproved(ctx context.Context, orgID uint, from, to time.Time) ([]models.HourLog, error) {
	var logs []models.HourLog
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Where("status = ?", models.HourLogStatusApproved).
		Where("date >= ? AND date <= ?", from, to).
		Preload("Volunteer").
		Find(&logs).Error
	return logs, err
}

func (r *hourLogRepository) ListApprovedByEvents(ctx context.Context, eventIDs []uint) ([]models.HourLog, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	var logs []models.HourLog
	err := r.db.WithContext(ctx).
		Where("event_id IN ?", eventIDs).
		Where("status = ?", models.HourLogStatusApproved).
		Find(&logs).Error
	return logs, err
}
