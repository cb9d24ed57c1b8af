package models

import "time"

// Membership links a volunteer to an organization.
type Membership struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"not null;index" json:"organization_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Status         string    `gorm:"size:32;not null" json:"status"`
	Role           string    `gorm:"size:64" json:"role"`
	JoinedAt       time.Time `gorm:"not null" json:"joined_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Volunteer      Volunteer `gorm:"foreignKey:UserID" json:"volunteer"`
}

const (
	// MembershipStatusActive marks a membership currently in good standing.
	MembershipStatusActive = "active"
	// MembershipStatusInactive marks a lapsed or suspended membership.
	MembershipStatusInactive = "inactive"
)

// IsActive reports whether the membership is currently in good standing.
func (m Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}
