package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/rela-go-api/internal/dto"
	"github.com/noah-isme/rela-go-api/internal/models"
)

const defaultEventPerformanceLimit = 20

func (s *metricsService) EventPerformance(ctx context.Context, orgID uint, rng DateRange, limit int) (dto.EventPerformanceResponse, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.event_performance")
	span.SetAttributes(attribute.Int64("metrics.org_id", int64(orgID)))
	defer span.End()

	if err := rng.Validate(); err != nil {
		return dto.EventPerformanceResponse{}, err
	}
	if limit <= 0 {
		limit = defaultEventPerformanceLimit
	}

	events, err := s.events.ListInRange(ctx, orgID, rng.From, rng.To, limit)
	if err != nil {
		span.RecordError(err)
		return dto.EventPerformanceResponse{}, err
	}

	eventIDs := make([]uint, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}

	applications, err := s.events.ListApplicationsByEvents(ctx, eventIDs)
	if err != nil {
		span.RecordError(err)
		return dto.EventPerformanceResponse{}, err
	}
	attendance, err := s.events.ListAttendanceByEvents(ctx, eventIDs)
	if err != nil {
		span.RecordError(err)
		return dto.EventPerformanceResponse{}, err
	}
	logs, err := s.hours.ListApprovedByEvents(ctx, eventIDs)
	if err != nil {
		span.RecordError(err)
		return dto.EventPerformanceResponse{}, err
	}

	registered := map[uint]int64{}
	for _, application := range applications {
		if application.Status == models.ApplicationStatusAccepted {
			registered[application.EventID]++
		}
	}
	attended := map[uint]int64{}
	for _, row := range attendance {
		if row.Status == models.AttendanceStatusPresent {
			attended[row.EventID]++
		}
	}
	hoursByEvent := map[uint]float64{}
	for _, log := range logs {
		if log.EventID != nil {
			hoursByEvent[*log.EventID] += log.Hours
		}
	}

	// Output keeps the newest-first order of the selected events; no
	// re-sorting by performance.
	items := make([]dto.EventPerformanceItem, 0, len(events))
	for _, event := range events {
		rate := 0.0
		if registered[event.ID] > 0 {
			rate = round1(float64(attended[event.ID]) / float64(registered[event.ID]) * 100)
		}
		items = append(items, dto.EventPerformanceItem{
			EventID:        event.ID,
			Title:          event.Title,
			StartAt:        event.StartAt,
			Registered:     registered[event.ID],
			Attended:       attended[event.ID],
			AttendanceRate: rate,
			TotalHours:     round1(hoursByEvent[event.ID]),
		})
	}

	return dto.EventPerformanceResponse{Events: items}, nil
}
