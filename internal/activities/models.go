package activities

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one logged CPE-earning event, together with the persisted
// verification verdict for it.
type Activity struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	CertificationID uuid.UUID `db:"certification_id" json:"certification_id"`
	ActivityType    string    `db:"activity_type" json:"activity_type"`
	Description     string    `db:"description" json:"description"`
	CPEValue        float64   `db:"cpe_value" json:"cpe_value"`
	ActivityDate    time.Time `db:"activity_date" json:"activity_date"`

	ProofFile        string `db:"proof_file" json:"proof_file,omitempty"`
	OriginalFilename string `db:"original_filename" json:"original_filename,omitempty"`

	Verified           bool    `db:"verified" json:"verified"`
	SuggestedCPEValue  float64 `db:"suggested_cpe_value" json:"suggested_cpe_value"`
	VerificationMethod string  `db:"verification_method" json:"verification_method"`
	VerificationNotes  string  `db:"verification_notes" json:"verification_notes"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateRequest is the form payload for logging an activity. The proof
// document travels alongside it as a multipart file part.
type CreateRequest struct {
	CertificationID uuid.UUID `form:"certification_id" binding:"required"`
	ActivityType    string    `form:"activity_type" binding:"required,max=50"`
	Description     string    `form:"description" binding:"required,max=500"`
	CPEValue        float64   `form:"cpe_value" binding:"required,gt=0"`
	ActivityDate    time.Time `form:"activity_date" time_format:"2006-01-02"`
}

// ListFilter narrows and pages an activity listing.
type ListFilter struct {
	CertificationID *uuid.UUID
	Limit           int
	Offset          int
}
