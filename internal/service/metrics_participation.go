package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/rela-go-api/internal/dto"
)

// hoursBucketBounds are the fixed, ordered histogram ranges for
// volunteersByHours. Lower bounds are inclusive, upper bounds exclusive.
var hoursBucketBounds = []struct {
	label string
	min   float64
	max   float64
}{
	{"0-10 hours", 0, 10},
	{"10-25 hours", 10, 25},
	{"25-50 hours", 25, 50},
	{"50-100 hours", 50, 100},
	{"100+ hours", 100, -1},
}

func (s *metricsService) Participation(ctx context.Context, orgID uint, rng DateRange) (dto.ParticipationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.participation")
	span.SetAttributes(attribute.Int64("metrics.org_id", int64(orgID)))
	defer span.End()

	if err := rng.Validate(); err != nil {
		return dto.ParticipationResponse{}, err
	}

	logs, err := s.hours.ListApproved(ctx, orgID, rng.From, rng.To)
	if err != nil {
		span.RecordError(err)
		return dto.ParticipationResponse{}, err
	}

	hoursByUser := map[uint]float64{}
	for _, log := range logs {
		hoursByUser[log.UserID] += log.Hours
	}
	active := int64(len(hoursByUser))

	memberships, err := s.memberships.List(ctx, orgID)
	if err != nil {
		span.RecordError(err)
		return dto.ParticipationResponse{}, err
	}

	activeMembers := map[uint]struct{}{}
	newMembers := map[uint]struct{}{}
	for _, membership := range memberships {
		if membership.IsActive() {
			activeMembers[membership.UserID] = struct{}{}
		}
		if rng.Contains(membership.JoinedAt) {
			newMembers[membership.UserID] = struct{}{}
		}
	}
	total := int64(len(activeMembers))

	rate := 0.0
	if total > 0 {
		rate = round1(float64(active) / float64(total) * 100)
	}

	buckets := make([]dto.HoursBucket, 0, len(hoursBucketBounds))
	for _, bound := range hoursBucketBounds {
		var count int64
		for _, hours := range hoursByUser {
			if hours >= bound.min && (bound.max < 0 || hours < bound.max) {
				count++
			}
		}
		buckets = append(buckets, dto.HoursBucket{Range: bound.label, Volunteers: count})
	}

	return dto.ParticipationResponse{
		ActiveVolunteers: active,
		TotalVolunteers:  total,
		// Can go negative when a volunteer logged approved hours in range
		// but no longer holds an active membership.
		InactiveVolunteers: total - active,
		NewVolunteers:      int64(len(newMembers)),
		ParticipationRate:  rate,
		VolunteersByHours:  buckets,
	}, nil
}
