package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/activities"
	"cpe-compass/portal-backend/internal/certifications"
	"cpe-compass/portal-backend/internal/reports/export"
)

// exportPageSize bounds how many activities one export pulls per query.
const exportPageSize = 100

// CertificationReader supplies certification summaries and reminders. The
// certifications service implements it.
type CertificationReader interface {
	Get(ctx context.Context, id, userID uuid.UUID) (*certifications.CertificationSummary, error)
	List(ctx context.Context, userID uuid.UUID) ([]*certifications.CertificationSummary, error)
	Reminders(ctx context.Context, userID uuid.UUID, now time.Time) ([]*certifications.Reminder, error)
}

// ActivityReader supplies activity pages. The activities service
// implements it.
type ActivityReader interface {
	List(ctx context.Context, userID uuid.UUID, filter activities.ListFilter) ([]*activities.Activity, int, error)
}

// Service assembles certification reports and dashboard summaries
type Service struct {
	certs  CertificationReader
	acts   ActivityReader
	logger *zap.Logger
}

// NewService creates a new reports service
func NewService(certs CertificationReader, acts ActivityReader, logger *zap.Logger) *Service {
	return &Service{certs: certs, acts: acts, logger: logger}
}

// Export writes a certification's activity report to w in the requested
// format and returns a download filename.
func (s *Service) Export(ctx context.Context, certificationID, userID uuid.UUID, format Format, w io.Writer) (string, error) {
	summary, err := s.certs.Get(ctx, certificationID, userID)
	if err != nil {
		return "", err
	}

	list, err := s.collectActivities(ctx, userID, certificationID)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatPDF:
		err = s.exportPDF(w, summary, list)
	case FormatExcel:
		err = s.exportExcel(w, summary, list)
	default:
		err = s.exportCSV(w, list)
	}
	if err != nil {
		return "", fmt.Errorf("failed to export report: %w", err)
	}

	s.logger.Info("Report exported",
		zap.String("certification_id", certificationID.String()),
		zap.String("format", string(format)),
		zap.Int("activities", len(list)))

	filename := fmt.Sprintf("%s_cpe_report.%s", sanitizeBaseName(summary.Name), format)
	return filename, nil
}

// Dashboard aggregates the user's certifications, activity counts and
// reminders into one summary.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error) {
	summaries, err := s.certs.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	reminders, err := s.certs.Reminders(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	list, err := s.collectActivities(ctx, userID, uuid.Nil)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalCertifications: len(summaries),
		TotalActivities:     len(list),
		Certifications:      summaries,
		Reminders:           reminders,
	}
	for _, cert := range summaries {
		summary.TotalEarnedCPEs += cert.EarnedCPEs
	}
	for _, activity := range list {
		if activity.Verified {
			summary.VerifiedActivities++
		}
	}

	return summary, nil
}

// collectActivities pages through all of a user's activities, optionally
// limited to one certification.
func (s *Service) collectActivities(ctx context.Context, userID, certificationID uuid.UUID) ([]*activities.Activity, error) {
	filter := activities.ListFilter{Limit: exportPageSize}
	if certificationID != uuid.Nil {
		filter.CertificationID = &certificationID
	}

	var all []*activities.Activity
	for {
		page, total, err := s.acts.List(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(all) >= total || len(page) == 0 {
			return all, nil
		}
		filter.Offset += len(page)
	}
}

func (s *Service) exportCSV(w io.Writer, list []*activities.Activity) error {
	exporter := export.NewCSVExporter(w, export.DefaultCSVOptions())

	if err := exporter.WriteHeader(reportColumns()); err != nil {
		return err
	}
	for _, activity := range list {
		if err := exporter.WriteRow(reportRow(activity)); err != nil {
			return err
		}
	}
	return exporter.Flush()
}

func (s *Service) exportPDF(w io.Writer, summary *certifications.CertificationSummary, list []*activities.Activity) error {
	options := export.DefaultPDFOptions()
	options.Title = "CPE Activity Report"
	options.Subtitle = fmt.Sprintf("%s (%s)", summary.Name, summary.Authority)

	generator := export.NewPDFGenerator(options)

	summaryItems := []export.SummaryItem{
		{Label: "Required CPEs", Value: fmt.Sprintf("%d", summary.RequiredCPEs)},
		{Label: "Earned CPEs", Value: fmt.Sprintf("%.1f", summary.EarnedCPEs)},
		{Label: "Progress", Value: fmt.Sprintf("%.1f%%", summary.ProgressPercentage)},
		{Label: "Status", Value: string(summary.Status)},
	}
	if summary.RenewalDate != nil {
		summaryItems = append(summaryItems, export.SummaryItem{
			Label: "Renewal Date", Value: summary.RenewalDate.Format("2006-01-02"),
		})
	}

	rows := make([][]string, 0, len(list))
	for _, activity := range list {
		verified := "No"
		if activity.Verified {
			verified = "Yes"
		}
		rows = append(rows, []string{
			activity.ActivityDate.Format("2006-01-02"),
			activity.ActivityType,
			activity.Description,
			fmt.Sprintf("%.1f", activity.CPEValue),
			verified,
			activity.VerificationMethod,
		})
	}

	labels := []string{"Date", "Type", "Description", "CPEs", "Verified", "Method"}
	weights := []float64{2, 2, 5, 1, 1.5, 2.5}

	if err := generator.GenerateReport(labels, weights, rows, summaryItems); err != nil {
		return err
	}
	return generator.WriteTo(w)
}

func (s *Service) exportExcel(w io.Writer, summary *certifications.CertificationSummary, list []*activities.Activity) error {
	options := export.DefaultExcelOptions()
	options.SheetName = "CPE Activities"

	exporter := export.NewExcelExporter(options)
	defer exporter.Close()

	if err := exporter.WriteHeader(reportColumns()); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(list))
	for _, activity := range list {
		rows = append(rows, reportRow(activity))
	}
	if err := exporter.WriteRows(rows); err != nil {
		return err
	}

	return exporter.WriteTo(w)
}

func reportColumns() []string {
	return []string{
		"Date", "Activity Type", "Description", "CPE Value",
		"Suggested Value", "Verified", "Method", "Proof Document",
	}
}

func reportRow(activity *activities.Activity) []interface{} {
	return []interface{}{
		activity.ActivityDate,
		activity.ActivityType,
		activity.Description,
		activity.CPEValue,
		activity.SuggestedCPEValue,
		activity.Verified,
		activity.VerificationMethod,
		activity.OriginalFilename,
	}
}

// sanitizeBaseName makes a certification name safe for a download filename.
func sanitizeBaseName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == '-' || r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
