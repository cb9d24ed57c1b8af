package dto

import "time"

// MetricsQueryRequest captures the shared query options for metrics endpoints.
type MetricsQueryRequest struct {
	From    string `query:"from"`
	To      string `query:"to"`
	GroupBy string `query:"group_by" validate:"omitempty,oneof=day week month"`
	Limit   int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

// OverviewResponse aggregates the headline figures for an organization.
type OverviewResponse struct {
	TotalHours               float64 `json:"total_hours"`
	TotalVolunteers          int64   `json:"total_volunteers"`
	ActiveVolunteers         int64   `json:"active_volunteers"`
	TotalEvents              int64   `json:"total_events"`
	CompletedEvents          int64   `json:"completed_events"`
	ComplianceRate           float64 `json:"compliance_rate"`
	AverageHoursPerVolunteer float64 `json:"average_hours_per_volunteer"`
}

// TrendPoint is one period in a hours trend series. Periods with no
// approved hours are omitted, so the series may be sparse.
type TrendPoint struct {
	Period     string  `json:"period"`
	Hours      float64 `json:"hours"`
	Volunteers int64   `json:"volunteers"`
}

// HoursTrendResponse is an ascending-by-period series of hour totals.
type HoursTrendResponse struct {
	GroupBy string       `json:"group_by"`
	Points  []TrendPoint `json:"points"`
}

// HoursBucket counts volunteers whose summed hours fall within a fixed range.
type HoursBucket struct {
	Range      string `json:"range"`
	Volunteers int64  `json:"volunteers"`
}

// ParticipationResponse describes volunteer participation for a range.
type ParticipationResponse struct {
	ActiveVolunteers   int64         `json:"active_volunteers"`
	TotalVolunteers    int64         `json:"total_volunteers"`
	InactiveVolunteers int64         `json:"inactive_volunteers"`
	NewVolunteers      int64         `json:"new_volunteers"`
	ParticipationRate  float64       `json:"participation_rate"`
	VolunteersByHours  []HoursBucket `json:"volunteers_by_hours"`
}

// EventPerformanceItem summarizes one event's turnout and logged hours.
type EventPerformanceItem struct {
	EventID        uint      `json:"event_id"`
	Title          string    `json:"title"`
	StartAt        time.Time `json:"start_at"`
	Registered     int64     `json:"registered"`
	Attended       int64     `json:"attended"`
	AttendanceRate float64   `json:"attendance_rate"`
	TotalHours     float64   `json:"total_hours"`
}

// EventPerformanceResponse lists recent events newest first.
type EventPerformanceResponse struct {
	Events []EventPerformanceItem `json:"events"`
}

// DocTypeCompliance breaks compliance down for one required document type.
type DocTypeCompliance struct {
	DocType string `json:"doc_type"`
	Total   int64  `json:"total"`
	Valid   int64  `json:"valid"`
	Expired int64  `json:"expired"`
	Missing int64  `json:"missing"`
}

// ExpiringDocument is a valid document approaching its expiry date.
type ExpiringDocument struct {
	DocumentID    uint      `json:"document_id"`
	UserID        uint      `json:"user_id"`
	VolunteerName string    `json:"volunteer_name"`
	DocType       string    `json:"doc_type"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// ComplianceStatusResponse describes organization-wide document compliance.
type ComplianceStatusResponse struct {
	OverallRate       float64             `json:"overall_rate"`
	ByDocType         []DocTypeCompliance `json:"by_doc_type"`
	ExpiringDocuments []ExpiringDocument  `json:"expiring_documents"`
}

// EngagementResponse aggregates engagement and retention figures.
type EngagementResponse struct {
	MonthlyActiveVolunteers   int64   `json:"monthly_active_volunteers"`
	AverageHoursPerVolunteer  float64 `json:"average_hours_per_volunteer"`
	AverageEventsPerVolunteer float64 `json:"average_events_per_volunteer"`
	RetentionRate             float64 `json:"retention_rate"`
	VolunteerGrowthRate       float64 `json:"volunteer_growth_rate"`
}

// TopVolunteerItem is one row of the hours leaderboard.
type TopVolunteerItem struct {
	Rank           int     `json:"rank"`
	UserID         uint    `json:"user_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	TotalHours     float64 `json:"total_hours"`
	EventsAttended int64   `json:"events_attended"`
}

// TopVolunteersResponse lists the leaderboard in rank order.
type TopVolunteersResponse struct {
	Volunteers []TopVolunteerItem `json:"volunteers"`
}
