package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rela-go-api/internal/models"
)

func TestHoursTrendDayBucketsMatchOverviewTotal(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	fixture := newMetricsFixture()
	fixture.hours.logs = []models.HourLog{
		{OrganizationID: 1, UserID: 1, Date: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), Hours: 1.5, Status: models.HourLogStatusApproved},
		{OrganizationID: 1, UserID: 2, Date: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC), Hours: 2.5, Status: models.HourLogStatusApproved},
		{OrganizationID: 1, UserID: 1, Date: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), Hours: 3, Status: models.HourLogStatusApproved},
	}
	svc := fixture.service(now)
	rng := DateRange{From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)}

	trend, err := svc.HoursTrend(context.Background(), 1, rng, GroupByDay)
	require.NoError(t, err)
	require.Len(t, trend.Points, 2)
	require.Equal(t, "2026-03-02", trend.Points[0].Period)
	require.Equal(t, 4.0, trend.Points[0].Hours)
	require.Equal(t, int64(2), trend.Points[0].Volunteers)
	require.Equal(t, "2026-03-05", trend.Points[1].Period)

	overview, err := svc.Overview(context.Background(), 1, &rng)
	require.NoError(t, err)
	var bucketSum float64
	for _, point := range trend.Points {
		bucketSum += point.Hours
	}
	require.Equal(t, overview.TotalHours, bucketSum)
}

func TestHoursTrendWeekKeysFollowISOYearRollover(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	fixture := newMetricsFixture()
	fixture.hours.logs = []models.HourLog{
		// Monday 2025-12-29 belongs to ISO week 1 of 2026.
		{OrganizationID: 1, UserID: 1, Date: time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), Hours: 2, Status: models.HourLogStatusApproved},
		{OrganizationID: 1, UserID: 2, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Hours: 3, Status: models.HourLogStatusApproved},
	}
	svc := fixture.service(now)
	rng := DateRange{From: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)}

	trend, err := svc.HoursTrend(context.Background(), 1, rng, GroupByWeek)
	require.NoError(t, err)
	require.Len(t, trend.Points, 1)
	require.Equal(t, "2026-W01", trend.Points[0].Period)
	require.Equal(t, 5.0, trend.Points[0].Hours)
	require.Equal(t, int64(2), trend.Points[0].Volunteers)
}

func TestHoursTrendMonthSeriesIsSparse(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	fixture := newMetricsFixture()
	fixture.hours.logs = []models.HourLog{
		{OrganizationID: 1, UserID: 1, Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), Hours: 2, Status: models.HourLogStatusApproved},
		{OrganizationID: 1, UserID: 1, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Hours: 4, Status: models.HourLogStatusApproved},
	}
	svc := fixture.service(now)
	rng := DateRange{From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)}

	trend, err := svc.HoursTrend(context.Background(), 1, rng, GroupByMonth)
	require.NoError(t, err)
	require.Len(t, trend.Points, 2, "february has no activity and must be omitted")
	require.Equal(t, "2026-01", trend.Points[0].Period)
	require.Equal(t, "2026-03", trend.Points[1].Period)
}

func TestHoursTrendDefaultsToWeekly(t *testing.T) {
	fixture := newMetricsFixture()
	svc := fixture.service(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))
	rng := DateRange{From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)}

	trend, err := svc.HoursTrend(context.Background(), 1, rng, "")
	require.NoError(t, err)
	require.Equal(t, "week", trend.GroupBy)
}

func TestHoursTrendRequiresRange(t *testing.T) {
	fixture := newMetricsFixture()
	svc := fixture.service(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))

	_, err := svc.HoursTrend(context.Background(), 1, DateRange{}, GroupByDay)
	require.ErrorIs(t, err, ErrMissingRange)

	inverted := DateRange{From: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	_, err = svc.HoursTrend(context.Background(), 1, inverted, GroupByDay)
	require.ErrorIs(t, err, ErrInvalidRange)
}
