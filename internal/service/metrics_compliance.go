package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/rela-go-api/internal/dto"
)

const (
	expiryWindow         = 30 * 24 * time.Hour
	expiringDocumentsCap = 10
)

func (s *metricsService) ComplianceStatus(ctx context.Context, orgID uint) (dto.ComplianceStatusResponse, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.compliance_status")
	span.SetAttributes(attribute.Int64("metrics.org_id", int64(orgID)))
	defer span.End()

	now := s.now()

	volunteers, err := s.activeVolunteerIDs(ctx, orgID)
	if err != nil {
		span.RecordError(err)
		return dto.ComplianceStatusResponse{}, err
	}
	if len(volunteers) == 0 {
		return dto.ComplianceStatusResponse{
			OverallRate:       100,
			ByDocType:         []dto.DocTypeCompliance{},
			ExpiringDocuments: []dto.ExpiringDocument{},
		}, nil
	}

	requirements, err := s.compliance.ListMandatoryRequirements(ctx, orgID)
	if err != nil {
		span.RecordError(err)
		return dto.ComplianceStatusResponse{}, err
	}

	docTypes := make([]string, 0, len(requirements))
	for _, requirement := range requirements {
		docTypes = append(docTypes, requirement.DocType)
	}

	documents, err := s.compliance.ListDocumentsByUsers(ctx, volunteers, docTypes)
	if err != nil {
		span.RecordError(err)
		return dto.ComplianceStatusResponse{}, err
	}

	validByType := map[string]map[uint]struct{}{}
	expiredByType := map[string]map[uint]struct{}{}
	for _, document := range documents {
		if document.IsUsable(now) {
			if validByType[document.DocType] == nil {
				validByType[document.DocType] = map[uint]struct{}{}
			}
			validByType[document.DocType][document.UserID] = struct{}{}
		}
		// Expiry is judged on the date alone; an inconsistent status field
		// may leave a volunteer counted on both sides.
		if document.ExpiresAt != nil && !document.ExpiresAt.After(now) {
			if expiredByType[document.DocType] == nil {
				expiredByType[document.DocType] = map[uint]struct{}{}
			}
			expiredByType[document.DocType][document.UserID] = struct{}{}
		}
	}

	total := int64(len(volunteers))
	var validSum, totalSum int64
	byDocType := make([]dto.DocTypeCompliance, 0, len(requirements))
	for _, requirement := range requirements {
		valid := int64(len(validByType[requirement.DocType]))
		expired := int64(len(expiredByType[requirement.DocType]))
		missing := total - valid - expired
		if missing < 0 {
			s.logger.Warn().
				Uint("org_id", orgID).
				Str("doc_type", requirement.DocType).
				Int64("overlap", -missing).
				Msg("volunteers counted both valid and expired for document type")
			missing = 0
		}

		byDocType = append(byDocType, dto.DocTypeCompliance{
			DocType: requirement.DocType,
			Total:   total,
			Valid:   valid,
			Expired: expired,
			Missing: missing,
		})
		validSum += valid
		totalSum += total
	}

	overall := 100.0
	if totalSum > 0 {
		overall = round1(float64(validSum) / float64(totalSum) * 100)
	}

	expiring, err := s.compliance.ListExpiringDocuments(ctx, volunteers, now, now.Add(expiryWindow), expiringDocumentsCap)
	if err != nil {
		span.RecordError(err)
		return dto.ComplianceStatusResponse{}, err
	}

	expiringDocs := make([]dto.ExpiringDocument, 0, len(expiring))
	for _, document := range expiring {
		if document.ExpiresAt == nil {
			continue
		}
		expiringDocs = append(expiringDocs, dto.ExpiringDocument{
			DocumentID:    document.ID,
			UserID:        document.UserID,
			VolunteerName: document.Volunteer.Name,
			DocType:       document.DocType,
			ExpiresAt:     *document.ExpiresAt,
		})
	}

	return dto.ComplianceStatusResponse{
		OverallRate:       overall,
		ByDocType:         byDocType,
		ExpiringDocuments: expiringDocs,
	}, nil
}
