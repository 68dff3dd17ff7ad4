package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Type labels what a notification is about.
type Type string

const (
	TypeRenewal     Type = "renewal"
	TypeLowProgress Type = "low_progress"
)

// Notification is one message pushed to a connected user.
type Notification struct {
	Type            Type      `json:"type"`
	Message         string    `json:"message"`
	CertificationID uuid.UUID `json:"certification_id"`
	Timestamp       time.Time `json:"timestamp"`
}
