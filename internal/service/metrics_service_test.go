package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rela-go-api/internal/models"
)

func TestOverviewComputesHeadlineFigures(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	fixture := newMetricsFixture()
	fixture.hours.logs = []models.HourLog{
		{OrganizationID: 1, UserID: 1, Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Hours: 2, Status: models.HourLogStatusApproved},
		{OrganizationID: 1, UserID: 1, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Hours: 3, Status: models.HourLogStatusApproved},
		{OrganizationID: 1, UserID: 2, Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Hours: 5, Status: models.HourLogStatusApproved},
		{OrganizationID: 1, UserID: 3, Date: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), Hours: 100, Status: models.HourLogStatusPending},
	}
	fixture.memberships.memberships = []models.Membership{
		{OrganizationID: 1, UserID: 1, Status: models.MembershipStatusActive, JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{OrganizationID: 1, UserID: 2, Status: models.MembershipStatusInactive, JoinedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{OrganizationID: 1, UserID: 3, Status: models.MembershipStatusActive, JoinedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	fixture.events.events = []models.Event{
		{ID: 1, OrganizationID: 1, StartAt: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC), EndAt: time.Date(2026, 2, 10, 17, 0, 0, 0, time.UTC)},
		{ID: 2, OrganizationID: 1, StartAt: time.Date(2026, 6, 20, 9, 0, 0, 0, time.UTC), EndAt: time.Date(2026, 6, 20, 17, 0, 0, 0, time.UTC)},
	}

	svc := fixture.service(now)
	rng := &DateRange{From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)}

	overview, err := svc.Overview(context.Background(), 1, rng)
	require.NoError(t, err)
	require.Equal(t, 10.0, overview.TotalHours)
	require.Equal(t, int64(2), overview.ActiveVolunteers)
	require.Equal(t, 5.0, overview.AverageHoursPerVolunteer)
	require.Equal(t, int64(3), overview.TotalVolunteers)
	require.Equal(t, int64(2), overview.TotalEvents)
	require.Equal(t, int64(1), overview.CompletedEvents)
	require.Equal(t, 100.0, overview.ComplianceRate, "no mandatory requirements means full compliance")
}

func TestOverviewDefaultRangeIsTwelveMonths(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	fixture := newMetricsFixture()
	fixture.hours.logs = []models.HourLog{
		{OrganizationID: 1, UserID: 1, Date: now.AddDate(0, -11, 0), Hours: 4, Status: models.HourLogStatusApproved},
		{OrganizationID: 1, UserID: 2, Date: now.AddDate(0, -13, 0), Hours: 6, Status: models.HourLogStatusApproved},
	}

	overview, err := fixture.service(now).Overview(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Equal(t, 4.0, overview.TotalHours)
	require.Equal(t, int64(1), overview.ActiveVolunteers)
}

func TestOverviewRejectsInvertedRange(t *testing.T) {
	fixture := newMetricsFixture()
	svc := fixture.service(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))

	rng := &DateRange{From: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}
	_, err := svc.Overview(context.Background(), 1, rng)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverviewAverageIsZeroWithoutActiveVolunteers(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	fixture := newMetricsFixture()

	overview, err := fixture.service(now).Overview(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Equal(t, 0.0, overview.TotalHours)
	require.Equal(t, 0.0, overview.AverageHoursPerVolunteer)
}

func TestComplianceRateIgnoresDocumentsWithoutRequirements(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	fixture := newMetricsFixture()
	fixture.memberships.memberships = []models.Membership{
		{OrganizationID: 1, UserID: 1, Status: models.MembershipStatusActive, JoinedAt: now.AddDate(-1, 0, 0)},
	}
	fixture.compliance.documents = []models.ComplianceDocument{
		{UserID: 1, DocType: "background-check", Status: models.DocumentStatusExpired},
	}

	overview, err := fixture.service(now).Overview(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Equal(t, 100.0, overview.ComplianceRate)
}

func TestOverviewPropagatesRepositoryFailure(t *testing.T) {
	fixture := newMetricsFixture()
	fixture.hours.err = context.DeadlineExceeded

	_, err := fixture.service(time.Now()).Overview(context.Background(), 1, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
