package service

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/rela-go-api/internal/dto"
	"github.com/noah-isme/rela-go-api/internal/models"
)

const defaultTopVolunteersLimit = 10

func (s *metricsService) TopVolunteers(ctx context.Context, orgID uint, rng DateRange, limit int) (dto.TopVolunteersResponse, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.top_volunteers")
	span.SetAttributes(attribute.Int64("metrics.org_id", int64(orgID)))
	defer span.End()

	if err := rng.Validate(); err != nil {
		return dto.TopVolunteersResponse{}, err
	}
	if limit <= 0 {
		limit = defaultTopVolunteersLimit
	}

	logs, err := s.hours.ListApproved(ctx, orgID, rng.From, rng.To)
	if err != nil {
		span.RecordError(err)
		return dto.TopVolunteersResponse{}, err
	}

	hoursByUser := map[uint]float64{}
	volunteersByID := map[uint]models.Volunteer{}
	for _, log := range logs {
		hoursByUser[log.UserID] += log.Hours
		volunteersByID[log.UserID] = log.Volunteer
	}

	attendance, err := s.events.ListPresentAttendance(ctx, orgID, rng.From, rng.To)
	if err != nil {
		span.RecordError(err)
		return dto.TopVolunteersResponse{}, err
	}
	eventsByUser := map[uint]int64{}
	for _, row := range attendance {
		eventsByUser[row.UserID]++
	}

	userIDs := make([]uint, 0, len(hoursByUser))
	for userID := range hoursByUser {
		userIDs = append(userIDs, userID)
	}
	// Ties on summed hours break on user id ascending to keep the
	// leaderboard stable between calls.
	sort.Slice(userIDs, func(i, j int) bool {
		if hoursByUser[userIDs[i]] != hoursByUser[userIDs[j]] {
			return hoursByUser[userIDs[i]] > hoursByUser[userIDs[j]]
		}
		return userIDs[i] < userIDs[j]
	})

	if len(userIDs) > limit {
		userIDs = userIDs[:limit]
	}

	items := make([]dto.TopVolunteerItem, 0, len(userIDs))
	for position, userID := range userIDs {
		volunteer := volunteersByID[userID]
		items = append(items, dto.TopVolunteerItem{
			Rank:           position + 1,
			UserID:         userID,
			Name:           volunteer.Name,
			Email:          volunteer.Email,
			TotalHours:     round1(hoursByUser[userID]),
			EventsAttended: eventsByUser[userID],
		})
	}

	return dto.TopVolunteersResponse{Volunteers: items}, nil
}
