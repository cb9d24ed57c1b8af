package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/rela-go-api/internal/models"
)

// EventRepository supplies events, applications and attendance for the metrics engine.
type EventRepository interface {
	// ListInRange returns events starting within [from, to], newest first.
	// A limit of zero or less returns all matching events.
	ListInRange(ctx context.Context, orgID uint, from, to time.Time, limit int) ([]models.Event, error)
	// ListApplicationsByEvents returns every application for the given events.
	ListApplicationsByEvents(ctx context.Context, eventIDs []uint) ([]models.EventApplication, error)
	// ListAttendanceByEvents returns every attendance row for the given events.
	ListAttendanceByEvents(ctx context.Context, eventIDs []uint) ([]models.Attendance, error)
	// ListPresentAttendance returns present attendance at the organization's
	// events with a check-in within [from, to].
	ListPresentAttendance(ctx context.Context, orgID uint, from, to time.Time) ([]models.Attendance, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository constructs the event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) ListInRange(ctx context.Context, orgID uint, from, to time.Time, limit int) ([]models.Event, error) {
	query := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Where("start_at >= ? AND start_at <= ?", from, to).
		Order("start_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var events []models.Event
	err := query.Find(&events).Error
	return events, err
}

func (r *eventRepository) ListApplicationsByEvents(ctx context.Context, eventIDs []uint) ([]models.EventApplication, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	var applications []models.EventApplication
	err := r.db.WithContext(ctx).
		Where("event_id IN ?", eventIDs).
		Find(&applications).Error
	return applications, err
}

func (r *eventRepository) ListAttendanceByEvents(ctx context.Context, eventIDs []uint) ([]models.Attendance, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	var attendance []models.Attendance
	err := r.db.WithContext(ctx).
		Where("event_id IN ?", eventIDs).
		Find(&attendance).Error
	return attendance, err
}

func (r *eventRepository) ListPresentAttendance(ctx context.Context, orgID uint, from, to time.Time) ([]models.Attendance, error) {
	var attendance []models.Attendance
	err := r.db.WithContext(ctx).
		Joins("JOIN events ON events.id = attendances.event_id").
		Where("events.organization_id = ?", orgID).
		Where("attendances.status = ?", models.AttendanceStatusPresent).
		Where("attendances.check_in_at >= ? AND attendances.check_in_at <= ?", from, to).
		Find(&attendance).Error
	return attendance, err
}
