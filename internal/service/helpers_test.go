package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/rela-go-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type fakeHourLogRepo struct {
	logs []models.HourLog
	err  error
}

func (f *fakeHourLogRepo) ListApproved(ctx context.Context, orgID uint, from, to time.Time) ([]models.HourLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]models.HourLog, 0)
	for _, log := range f.logs {
		if log.OrganizationID != orgID || log.Status != models.HourLogStatusApproved {
			continue
		}
		if log.Date.Before(from) || log.Date.After(to) {
			continue
		}
		result = append(result, log)
	}
	return result, nil
}

func (f *fakeHourLogRepo) ListApprovedByEvents(ctx context.Context, eventIDs []uint) ([]models.HourLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := map[uint]struct{}{}
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}
	result := make([]models.HourLog, 0)
	for _, log := range f.logs {
		if log.Status != models.HourLogStatusApproved || log.EventID == nil {
			continue
		}
		if _, ok := wanted[*log.EventID]; ok {
			result = append(result, log)
		}
	}
	return result, nil
}

type fakeMembershipRepo struct {
	memberships []models.Membership
}

func (f *fakeMembershipRepo) List(ctx context.Context, orgID uint) ([]models.Membership, error) {
	result := make([]models.Membership, 0)
	for _, membership := range f.memberships {
		if membership.OrganizationID == orgID {
			result = append(result, membership)
		}
	}
	return result, nil
}

func (f *fakeMembershipRepo) CountDistinctUsers(ctx context.Context, orgID uint) (int64, error) {
	seen := map[uint]struct{}{}
	for _, membership := range f.memberships {
		if membership.OrganizationID == orgID {
			seen[membership.UserID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

type fakeEventRepo struct {
	events       []models.Event
	applications []models.EventApplication
	attendance   []models.Attendance
}

func (f *fakeEventRepo) ListInRange(ctx context.Context, orgID uint, from, to time.Time, limit int) ([]models.Event, error) {
	result := make([]models.Event, 0)
	for _, event := range f.events {
		if event.OrganizationID != orgID {
			continue
		}
		if event.StartAt.Before(from) || event.StartAt.After(to) {
			continue
		}
		result = append(result, event)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.After(result[j].StartAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeEventRepo) ListApplicationsByEvents(ctx context.Context, eventIDs []uint) ([]models.EventApplication, error) {
	wanted := map[uint]struct{}{}
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}
	result := make([]models.EventApplication, 0)
	for _, application := range f.applications {
		if _, ok := wanted[application.EventID]; ok {
			result = append(result, application)
		}
	}
	return result, nil
}

func (f *fakeEventRepo) ListAttendanceByEvents(ctx context.Context, eventIDs []uint) ([]models.Attendance, error) {
	wanted := map[uint]struct{}{}
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}
	result := make([]models.Attendance, 0)
	for _, row := range f.attendance {
		if _, ok := wanted[row.EventID]; ok {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeEventRepo) ListPresentAttendance(ctx context.Context, orgID uint, from, to time.Time) ([]models.Attendance, error) {
	orgEvents := map[uint]struct{}{}
	for _, event := range f.events {
		if event.OrganizationID == orgID {
			orgEvents[event.ID] = struct{}{}
		}
	}
	result := make([]models.Attendance, 0)
	for _, row := range f.attendance {
		if row.Status != models.AttendanceStatusPresent {
			continue
		}
		if _, ok := orgEvents[row.EventID]; !ok {
			continue
		}
		if row.CheckInAt.Before(from) || row.CheckInAt.After(to) {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

type fakeComplianceRepo struct {
	requirements []models.ComplianceRequirement
	documents    []models.ComplianceDocument
}

func (f *fakeComplianceRepo) ListMandatoryRequirements(ctx context.Context, orgID uint) ([]models.ComplianceRequirement, error) {
	result := make([]models.ComplianceRequirement, 0)
	for _, requirement := range f.requirements {
		if requirement.OrganizationID == orgID && requirement.IsMandatory {
			result = append(result, requirement)
		}
	}
	return result, nil
}

func (f *fakeComplianceRepo) ListDocumentsByUsers(ctx context.Context, userIDs []uint, docTypes []string) ([]models.ComplianceDocument, error) {
	users := map[uint]struct{}{}
	for _, id := range userIDs {
		users[id] = struct{}{}
	}
	types := map[string]struct{}{}
	for _, docType := range docTypes {
		types[docType] = struct{}{}
	}
	result := make([]models.ComplianceDocument, 0)
	for _, document := range f.documents {
		if _, ok := users[document.UserID]; !ok {
			continue
		}
		if _, ok := types[document.DocType]; !ok {
			continue
		}
		result = append(result, document)
	}
	return result, nil
}

func (f *fakeComplianceRepo) ListExpiringDocuments(ctx context.Context, userIDs []uint, from, to time.Time, limit int) ([]models.ComplianceDocument, error) {
	users := map[uint]struct{}{}
	for _, id := range userIDs {
		users[id] = struct{}{}
	}
	result := make([]models.ComplianceDocument, 0)
	for _, document := range f.documents {
		if document.Status != models.DocumentStatusValid || document.ExpiresAt == nil {
			continue
		}
		if _, ok := users[document.UserID]; !ok {
			continue
		}
		if document.ExpiresAt.Before(from) || document.ExpiresAt.After(to) {
			continue
		}
		result = append(result, document)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ExpiresAt.Before(*result[j].ExpiresAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type metricsFixture struct {
	hours       *fakeHourLogRepo
	memberships *fakeMembershipRepo
	events      *fakeEventRepo
	compliance  *fakeComplianceRepo
}

func newMetricsFixture() *metricsFixture {
	return &metricsFixture{
		hours:       &fakeHourLogRepo{},
		memberships: &fakeMembershipRepo{},
		events:      &fakeEventRepo{},
		compliance:  &fakeComplianceRepo{},
	}
}

func (f *metricsFixture) service(now time.Time) MetricsService {
	svc := NewMetricsService(f.hours, f.memberships, f.events, f.compliance, testLogger())
	svc.(*metricsService).now = func() time.Time { return now }
	return svc
}
