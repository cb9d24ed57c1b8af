package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/rela-go-api/internal/models"
)

// ComplianceRepository supplies requirements and documents for compliance metrics.
type ComplianceRepository interface {
	// ListMandatoryRequirements returns the organization's mandatory
	// document requirements.
	ListMandatoryRequirements(ctx context.Context, orgID uint) ([]models.ComplianceRequirement, error)
	// ListDocumentsByUsers returns every document of the given types held by
	// the given volunteers. Empty docTypes matches no documents.
	ListDocumentsByUsers(ctx context.Context, userIDs []uint, docTypes []string) ([]models.ComplianceDocument, error)
	// ListExpiringDocuments returns valid documents held by the given
	// volunteers that expire within [from, to], soonest first, capped at
	// limit, with the owning volunteer preloaded.
	ListExpiringDocuments(ctx context.Context, userIDs []uint, from, to time.Time, limit int) ([]models.ComplianceDocument, error)
}

type complianceRepository struct {
	db *gorm.DB
}

// NewComplianceRepository constructs the compliance repository.
func NewComplianceRepository(db *gorm.DB) ComplianceRepository {
	return &complianceRepository{db: db}
}

func (r *complianceRepository) ListMandatoryRequirements(ctx context.Context, orgID uint) ([]models.ComplianceRequirement, error) {
	var requirements []models.ComplianceRequirement
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Where("is_mandatory = ?", true).
		Find(&requirements).Error
	return requirements, err
}

func (r *complianceRepository) ListDocumentsByUsers(ctx context.Context, userIDs []uint, docTypes []string) ([]models.ComplianceDocument, error) {
	if len(userIDs) == 0 || len(docTypes) == 0 {
		return nil, nil
	}

	var documents []models.ComplianceDocument
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("doc_type IN ?", docTypes).
		Find(&documents).Error
	return documents, err
}

func (r *complianceRepository) ListExpiringDocuments(ctx context.Context, userIDs []uint, from, to time.Time, limit int) ([]models.ComplianceDocument, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("status = ?", models.DocumentStatusValid).
		Where("expires_at IS NOT NULL").
		Where("expires_at >= ? AND expires_at <= ?", from, to).
		Order("expires_at ASC").
		Preload("Volunteer")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var documents []models.ComplianceDocument
	err := query.Find(&documents).Error
	return documents, err
}
