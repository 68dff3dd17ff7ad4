package reports

import (
	"fmt"

	"cpe-compass/portal-backend/internal/certifications"
)

// Format selects an export encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatPDF   Format = "pdf"
	FormatExcel Format = "xlsx"
)

// ParseFormat validates a format query parameter.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case FormatCSV, FormatPDF, FormatExcel:
		return Format(raw), nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// DashboardSummary aggregates a user's standing across all certifications.
type DashboardSummary struct {
	TotalCertifications int                                      `json:"total_certifications"`
	TotalActivities     int                                      `json:"total_activities"`
	TotalEarnedCPEs     float64                                  `json:"total_earned_cpes"`
	VerifiedActivities  int                                      `json:"verified_activities"`
	Certifications      []*certifications.CertificationSummary   `json:"certifications"`
	Reminders           []*certifications.Reminder               `json:"reminders"`
}
