package models

import "time"

// HourLog records volunteer time contributed to an organization,
// optionally tied to a specific event.
type HourLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"not null;index" json:"organization_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	EventID        *uint     `gorm:"index" json:"event_id"`
	Date           time.Time `gorm:"not null;index" json:"date"`
	Hours          float64   `gorm:"not null" json:"hours"`
	Status         string    `gorm:"size:32;not null" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Volunteer      Volunteer `gorm:"foreignKey:UserID" json:"volunteer"`
}

const (
	// HourLogStatusPending indicates the entry is awaiting review.
	HourLogStatusPending = "pending"
	// HourLogStatusApproved indicates the entry passed review and counts toward metrics.
	HourLogStatusApproved = "approved"
	// HourLogStatusRejected indicates the entry was declined during review.
	HourLogStatusRejected = "rejected"
)

// IsApproved reports whether the entry counts toward hour metrics.
func (h HourLog) IsApproved() bool {
	return h.Status == HourLogStatusApproved
}
