package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/rela-go-api/internal/models"
)

// MembershipRepository supplies membership records for the metrics engine.
type MembershipRepository interface {
	// List returns every membership ever recorded for the organization,
	// regardless of status.
	List(ctx context.Context, orgID uint) ([]models.Membership, error)
	// CountDistinctUsers counts distinct volunteers across all memberships
	// for the organization, regardless of status.
	CountDistinctUsers(ctx context.Context, orgID uint) (int64, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository constructs the membership repository.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) List(ctx context.Context, orgID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Find(&memberships).Error
	return memberships, err
}

func (r *membershipRepository) CountDistinctUsers(ctx context.Context, orgID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("organization_id = ?", orgID).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
