package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/rela-go-api/internal/dto"
	"github.com/noah-isme/rela-go-api/internal/models"
	"github.com/noah-isme/rela-go-api/internal/repository"
)

// MetricsService computes organization analytics over caller-supplied date
// windows. Every operation is a full, read-only recomputation; nothing is
// cached or mutated here.
type MetricsService interface {
	Overview(ctx context.Context, orgID uint, rng *DateRange) (dto.OverviewResponse, error)
	HoursTrend(ctx context.Context, orgID uint, rng DateRange, groupBy GroupBy) (dto.HoursTrendResponse, error)
	Participation(ctx context.Context, orgID uint, rng DateRange) (dto.ParticipationResponse, error)
	EventPerformance(ctx context.Context, orgID uint, rng DateRange, limit int) (dto.EventPerformanceResponse, error)
	ComplianceStatus(ctx context.Context, orgID uint) (dto.ComplianceStatusResponse, error)
	Engagement(ctx context.Context, orgID uint, rng DateRange) (dto.EngagementResponse, error)
	TopVolunteers(ctx context.Context, orgID uint, rng DateRange, limit int) (dto.TopVolunteersResponse, error)
}

type metricsService struct {
	hours       repository.HourLogRepository
	memberships repository.MembershipRepository
	events      repository.EventRepository
	compliance  repository.ComplianceRepository
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewMetricsService constructs the metrics engine.
func NewMetricsService(
	hours repository.HourLogRepository,
	memberships repository.MembershipRepository,
	events repository.EventRepository,
	compliance repository.ComplianceRepository,
	logger zerolog.Logger,
) MetricsService {
	return &metricsService{
		hours:       hours,
		memberships: memberships,
		events:      events,
		compliance:  compliance,
		logger:      logger.With().Str("component", "metrics_service").Logger(),
		tracer:      otel.Tracer("github.com/noah-isme/rela-go-api/internal/service/metrics"),
		now:         time.Now,
	}
}

func (s *metricsService) Overview(ctx context.Context, orgID uint, rng *DateRange) (dto.OverviewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.overview")
	span.SetAttributes(attribute.Int64("metrics.org_id", int64(orgID)))
	defer span.End()

	now := s.now()
	window := DateRange{From: now.AddDate(0, -12, 0), To: now}
	if rng != nil {
		if err := rng.Validate(); err != nil {
			return dto.OverviewResponse{}, err
		}
		window = *rng
	}

	logs, err := s.hours.ListApproved(ctx, orgID, window.From, window.To)
	if err != nil {
		span.RecordError(err)
		return dto.OverviewResponse{}, err
	}

	var totalHours float64
	activeSet := map[uint]struct{}{}
	for _, log := range logs {
		totalHours += log.Hours
		activeSet[log.UserID] = struct{}{}
	}
	totalHours = round1(totalHours)

	totalVolunteers, err := s.memberships.CountDistinctUsers(ctx, orgID)
	if err != nil {
		span.RecordError(err)
		return dto.OverviewResponse{}, err
	}

	events, err := s.events.ListInRange(ctx, orgID, window.From, window.To, 0)
	if err != nil {
		span.RecordError(err)
		return dto.OverviewResponse{}, err
	}
	var completed int64
	for _, event := range events {
		if event.IsCompleted(now) {
			completed++
		}
	}

	complianceRate, err := s.complianceRate(ctx, orgID, now)
	if err != nil {
		span.RecordError(err)
		return dto.OverviewResponse{}, err
	}

	average := 0.0
	if len(activeSet) > 0 {
		average = round1(totalHours / float64(len(activeSet)))
	}

	return dto.OverviewResponse{
		TotalHours:               totalHours,
		TotalVolunteers:          totalVolunteers,
		ActiveVolunteers:         int64(len(activeSet)),
		TotalEvents:              int64(len(events)),
		CompletedEvents:          completed,
		ComplianceRate:           round2(complianceRate),
		AverageHoursPerVolunteer: average,
	}, nil
}

// complianceRate returns the unrounded share of fulfilled mandatory document
// slots across all currently active volunteers. Both an empty volunteer set
// and an empty requirement set count as fully compliant.
func (s *metricsService) complianceRate(ctx context.Context, orgID uint, now time.Time) (float64, error) {
	volunteers, err := s.activeVolunteerIDs(ctx, orgID)
	if err != nil {
		return 0, err
	}
	if len(volunteers) == 0 {
		return 100, nil
	}

	requirements, err := s.compliance.ListMandatoryRequirements(ctx, orgID)
	if err != nil {
		return 0, err
	}
	if len(requirements) == 0 {
		return 100, nil
	}

	docTypes := make([]string, 0, len(requirements))
	mandatory := make(map[string]struct{}, len(requirements))
	for _, requirement := range requirements {
		docTypes = append(docTypes, requirement.DocType)
		mandatory[requirement.DocType] = struct{}{}
	}

	documents, err := s.compliance.ListDocumentsByUsers(ctx, volunteers, docTypes)
	if err != nil {
		return 0, err
	}

	type slot struct {
		userID  uint
		docType string
	}
	fulfilled := map[slot]struct{}{}
	for _, document := range documents {
		if _, ok := mandatory[document.DocType]; !ok {
			continue
		}
		if document.IsUsable(now) {
			fulfilled[slot{userID: document.UserID, docType: document.DocType}] = struct{}{}
		}
	}

	totalRequired := len(volunteers) * len(requirements)
	return float64(len(fulfilled)) / float64(totalRequired) * 100, nil
}

// activeVolunteerIDs resolves the distinct user ids behind the
// organization's active memberships.
func (s *metricsService) activeVolunteerIDs(ctx context.Context, orgID uint) ([]uint, error) {
	memberships, err := s.memberships.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	seen := map[uint]struct{}{}
	ids := make([]uint, 0, len(memberships))
	for _, membership := range memberships {
		if !membership.IsActive() {
			continue
		}
		if _, ok := seen[membership.UserID]; ok {
			continue
		}
		seen[membership.UserID] = struct{}{}
		ids = append(ids, membership.UserID)
	}
	return ids, nil
}

func distinctUsers(logs []models.HourLog) map[uint]struct{} {
	users := map[uint]struct{}{}
	for _, log := range logs {
		users[log.UserID] = struct{}{}
	}
	return users
}
