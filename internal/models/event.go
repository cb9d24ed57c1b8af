package models

import "time"

// Event is a scheduled volunteering activity hosted by an organization.
type Event struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"not null;index" json:"organization_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	StartAt        time.Time `gorm:"not null;index" json:"start_at"`
	EndAt          time.Time `gorm:"not null" json:"end_at"`
	Capacity       int       `json:"capacity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsCompleted reports whether the event has already finished.
func (e Event) IsCompleted(reference time.Time) bool {
	return e.EndAt.Before(reference)
}

// EventApplication is a volunteer's request to join an event.
type EventApplication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// ApplicationStatusPending indicates the application awaits a decision.
	ApplicationStatusPending = "pending"
	// ApplicationStatusAccepted indicates the volunteer is registered for the event.
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates the application was declined.
	ApplicationStatusRejected = "rejected"
)

// Attendance records whether a registered volunteer showed up at an event.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	CheckInAt time.Time `json:"check_in_at"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	// AttendanceStatusPresent indicates the volunteer checked in.
	AttendanceStatusPresent = "present"
	// AttendanceStatusAbsent indicates the volunteer did not show up.
	AttendanceStatusAbsent = "absent"
)
