package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/rela-go-api/internal/dto"
)

func (s *metricsService) Engagement(ctx context.Context, orgID uint, rng DateRange) (dto.EngagementResponse, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.engagement")
	span.SetAttributes(attribute.Int64("metrics.org_id", int64(orgID)))
	defer span.End()

	if err := rng.Validate(); err != nil {
		return dto.EngagementResponse{}, err
	}

	now := s.now()

	// Always "this month", independent of the supplied range.
	monthlyLogs, err := s.hours.ListApproved(ctx, orgID, startOfMonth(now), now)
	if err != nil {
		span.RecordError(err)
		return dto.EngagementResponse{}, err
	}
	monthlyActive := int64(len(distinctUsers(monthlyLogs)))

	overview, err := s.Overview(ctx, orgID, &rng)
	if err != nil {
		span.RecordError(err)
		return dto.EngagementResponse{}, err
	}

	attendance, err := s.events.ListPresentAttendance(ctx, orgID, rng.From, rng.To)
	if err != nil {
		span.RecordError(err)
		return dto.EngagementResponse{}, err
	}
	attendees := map[uint]struct{}{}
	for _, row := range attendance {
		attendees[row.UserID] = struct{}{}
	}
	averageEvents := 0.0
	if len(attendees) > 0 {
		averageEvents = round1(float64(len(attendance)) / float64(len(attendees)))
	}

	rangeLogs, err := s.hours.ListApproved(ctx, orgID, rng.From, rng.To)
	if err != nil {
		span.RecordError(err)
		return dto.EngagementResponse{}, err
	}

	firstMonthEnd := startOfMonth(rng.From).AddDate(0, 1, 0)
	lastMonthStart := startOfMonth(rng.To)
	cohort := map[uint]struct{}{}
	retainedCandidates := map[uint]struct{}{}
	for _, log := range rangeLogs {
		date := log.Date.UTC()
		if date.Before(firstMonthEnd) {
			cohort[log.UserID] = struct{}{}
		}
		if !date.Before(lastMonthStart) {
			retainedCandidates[log.UserID] = struct{}{}
		}
	}

	retention := 0.0
	growth := 0.0
	if len(cohort) > 0 {
		var retained int64
		for userID := range cohort {
			if _, ok := retainedCandidates[userID]; ok {
				retained++
			}
		}
		retention = round1(float64(retained) / float64(len(cohort)) * 100)

		previous := rng.ShiftMonths(-1)
		previousLogs, err := s.hours.ListApproved(ctx, orgID, previous.From, previous.To)
		if err != nil {
			span.RecordError(err)
			return dto.EngagementResponse{}, err
		}
		previousActive := len(distinctUsers(previousLogs))
		if previousActive > 0 {
			growth = round1(float64(overview.ActiveVolunteers-int64(previousActive)) / float64(previousActive) * 100)
		}
	}

	return dto.EngagementResponse{
		MonthlyActiveVolunteers:   monthlyActive,
		AverageHoursPerVolunteer:  overview.AverageHoursPerVolunteer,
		AverageEventsPerVolunteer: averageEvents,
		RetentionRate:             retention,
		VolunteerGrowthRate:       growth,
	}, nil
}
