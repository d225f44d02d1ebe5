package models

import "github.com/shopspring/decimal"

// Imam is the active imam. The backend answers null when none is appointed.
type Imam struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Phone           string           `json:"phone"`
	Email           *string          `json:"email"`
	Qualification   string           `json:"qualification"`
	ExperienceYears int              `json:"experience_years"`
	AppointmentDate string           `json:"appointment_date"`
	Salary          *decimal.Decimal `json:"salary"`
	IsActive        bool             `json:"is_active"`
}

const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)

// Announcement is a notice board entry. The backend lists active ones newest first.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt Timestamp `json:"created_at"`
	IsActive  bool      `json:"is_active"`
	Priority  string    `json:"priority"`
}

func (a Announcement) IsHighPriority() bool {
	return a.Priority == PriorityHigh
}
