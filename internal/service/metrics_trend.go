package service

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/rela-go-api/internal/dto"
)

func (s *metricsService) HoursTrend(ctx context.Context, orgID uint, rng DateRange, groupBy GroupBy) (dto.HoursTrendResponse, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.hours_trend")
	span.SetAttributes(
		attribute.Int64("metrics.org_id", int64(orgID)),
		attribute.String("metrics.group_by", string(groupBy)),
	)
	defer span.End()

	if err := rng.Validate(); err != nil {
		return dto.HoursTrendResponse{}, err
	}
	if groupBy == "" {
		groupBy = GroupByWeek
	}

	logs, err := s.hours.ListApproved(ctx, orgID, rng.From, rng.To)
	if err != nil {
		span.RecordError(err)
		return dto.HoursTrendResponse{}, err
	}

	hoursByPeriod := map[string]float64{}
	usersByPeriod := map[string]map[uint]struct{}{}
	for _, log := range logs {
		key := groupBy.periodKey(log.Date)
		hoursByPeriod[key] += log.Hours
		if usersByPeriod[key] == nil {
			usersByPeriod[key] = map[uint]struct{}{}
		}
		usersByPeriod[key][log.UserID] = struct{}{}
	}

	periods := make([]string, 0, len(hoursByPeriod))
	for period := range hoursByPeriod {
		periods = append(periods, period)
	}
	// Period labels are zero-padded, so string order is chronological.
	sort.Strings(periods)

	points := make([]dto.TrendPoint, 0, len(periods))
	for _, period := range periods {
		points = append(points, dto.TrendPoint{
			Period:     period,
			Hours:      round1(hoursByPeriod[period]),
			Volunteers: int64(len(usersByPeriod[period])),
		})
	}

	return dto.HoursTrendResponse{GroupBy: string(groupBy), Points: points}, nil
}
