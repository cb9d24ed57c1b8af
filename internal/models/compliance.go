package models

import "time"

// ComplianceRequirement is an organization-defined document type that
// volunteers must hold a valid instance of.
type ComplianceRequirement struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"not null;index" json:"organization_id"`
	DocType        string    `gorm:"size:128;not null" json:"doc_type"`
	IsMandatory    bool      `gorm:"not null" json:"is_mandatory"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ComplianceDocument is a document a volunteer holds, such as a background
// check or safeguarding certificate. ExpiresAt is nil for documents that
// never expire.
type ComplianceDocument struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	DocType   string     `gorm:"size:128;not null;index" json:"doc_type"`
	Status    string     `gorm:"size:32;not null" json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Volunteer Volunteer  `gorm:"foreignKey:UserID" json:"volunteer"`
}

const (
	// DocumentStatusValid marks a document accepted by the organization.
	DocumentStatusValid = "valid"
	// DocumentStatusExpired marks a document past its expiry date.
	DocumentStatusExpired = "expired"
	// DocumentStatusPending marks a document awaiting verification.
	DocumentStatusPending = "pending"
)

// IsExpired reports whether the document is past its expiry date. A document
// without an expiry date never expires.
func (d ComplianceDocument) IsExpired(reference time.Time) bool {
	return d.ExpiresAt != nil && !d.ExpiresAt.After(reference)
}

// IsUsable reports whether the document satisfies a requirement at the given
// reference time.
func (d ComplianceDocument) IsUsable(reference time.Time) bool {
	return d.Status == DocumentStatusValid && !d.IsExpired(reference)
}
