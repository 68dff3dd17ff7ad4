package certifications

import (
	"time"

	"github.com/google/uuid"
)

// Status summarizes how far along a certification's CPE cycle is.
type Status string

const (
	StatusComplete Status = "complete"
	StatusOnTrack  Status = "on-track"
	StatusBehind   Status = "behind"
	StatusCritical Status = "critical"
)

// Certification is a credential a user maintains by earning CPE credits.
type Certification struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	Name         string     `db:"name" json:"name"`
	Authority    string     `db:"authority" json:"authority"`
	RequiredCPEs int        `db:"required_cpes" json:"required_cpes"`
	RenewalDate  *time.Time `db:"renewal_date" json:"renewal_date,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// CertificationSummary is a certification together with its computed
// progress fields.
type CertificationSummary struct {
	Certification
	EarnedCPEs         float64 `json:"earned_cpes"`
	ProgressPercentage float64 `json:"progress_percentage"`
	Status             Status  `json:"status"`
}

// CreateRequest is the payload for adding a certification.
type CreateRequest struct {
	Name         string     `json:"name" binding:"required,max=100"`
	Authority    string     `json:"authority" binding:"required,max=50"`
	RequiredCPEs int        `json:"required_cpes" binding:"required,min=1"`
	RenewalDate  *time.Time `json:"renewal_date"`
}

// UpdateRequest is the payload for editing a certification. Nil fields are
// left unchanged.
type UpdateRequest struct {
	Name         *string    `json:"name"`
	Authority    *string    `json:"authority"`
	RequiredCPEs *int       `json:"required_cpes"`
	RenewalDate  *time.Time `json:"renewal_date"`
}

// ReminderType distinguishes the kinds of dashboard reminders.
type ReminderType string

const (
	ReminderTypeRenewal     ReminderType = "renewal"
	ReminderTypeLowProgress ReminderType = "low_progress"
)

// Reminder nudges a user about a certification that needs attention.
type Reminder struct {
	Type            ReminderType `json:"type"`
	Message         string       `json:"message"`
	CertificationID uuid.UUID    `json:"certification_id"`
}
