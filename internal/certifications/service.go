package certifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// renewalWindow is how far ahead of a renewal date reminders start firing.
const renewalWindow = 90 * 24 * time.Hour

// lowProgressThreshold marks certifications with very little progress.
const lowProgressThreshold = 25.0

// Service provides business logic for certification operations
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new certifications service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create adds a certification for a user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRequest) (*Certification, error) {
	cert := &Certification{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         req.Name,
		Authority:    req.Authority,
		RequiredCPEs: req.RequiredCPEs,
		RenewalDate:  req.RenewalDate,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info("Certification created",
		zap.String("certification_id", cert.ID.String()),
		zap.String("authority", cert.Authority),
		zap.String("user_id", userID.String()))

	return cert, nil
}

// Get retrieves one certification with computed progress.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*CertificationSummary, error) {
	cert, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, cert)
}

// List retrieves all of a user's certifications with computed progress.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*CertificationSummary, error) {
	certs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*CertificationSummary, 0, len(certs))
	for _, cert := range certs {
		summary, err := s.summarize(ctx, cert)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Update edits a certification.
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateRequest) (*Certification, error) {
	cert, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cert.Name = *req.Name
	}
	if req.Authority != nil {
		cert.Authority = *req.Authority
	}
	if req.RequiredCPEs != nil {
		if *req.RequiredCPEs < 1 {
			return nil, fmt.Errorf("required_cpes must be positive")
		}
		cert.RequiredCPEs = *req.RequiredCPEs
	}
	if req.RenewalDate != nil {
		cert.RenewalDate = req.RenewalDate
	}

	if err := s.repo.Update(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info("Certification updated", zap.String("certification_id", id.String()))

	return cert, nil
}

// Delete removes a certification and, through the schema's cascade, its
// activities.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("Certification deleted", zap.String("certification_id", id.String()))
	return nil
}

// Reminders returns the renewal and low-progress nudges for a user's
// certifications, evaluated at now.
func (s *Service) Reminders(ctx context.Context, userID uuid.UUID, now time.Time) ([]*Reminder, error) {
	summaries, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	var reminders []*Reminder
	for _, summary := range summaries {
		if summary.RenewalDate != nil {
			daysUntil := int(summary.RenewalDate.Sub(now).Hours() / 24)
			if summary.RenewalDate.Sub(now) <= renewalWindow && summary.ProgressPercentage < 100 {
				needed := float64(summary.RequiredCPEs) - summary.EarnedCPEs
				reminders = append(reminders, &Reminder{
					Type: ReminderTypeRenewal,
					Message: fmt.Sprintf("%s renewal is in %d days and you need %.1f more CPEs",
						summary.Name, daysUntil, needed),
					CertificationID: summary.ID,
				})
			}
		}

		if summary.ProgressPercentage < lowProgressThreshold {
			reminders = append(reminders, &Reminder{
				Type: ReminderTypeLowProgress,
				Message: fmt.Sprintf("%s has very low progress (%.1f%%)",
					summary.Name, summary.ProgressPercentage),
				CertificationID: summary.ID,
			})
		}
	}

	return reminders, nil
}

// summarize attaches earned CPEs, progress and status to a certification.
func (s *Service) summarize(ctx context.Context, cert *Certification) (*CertificationSummary, error) {
	earned, err := s.repo.SumActivityValues(ctx, cert.ID)
	if err != nil {
		return nil, err
	}

	progress := progressPercentage(earned, cert.RequiredCPEs)

	return &CertificationSummary{
		Certification:      *cert,
		EarnedCPEs:         earned,
		ProgressPercentage: progress,
		Status:             statusFor(progress),
	}, nil
}

func progressPercentage(earned float64, required int) float64 {
	if required == 0 {
		return 100
	}
	progress := earned / float64(required) * 100
	if progress > 100 {
		progress = 100
	}
	return progress
}

func statusFor(progress float64) Status {
	switch {
	case progress >= 100:
		return StatusComplete
	case progress >= 75:
		return StatusOnTrack
	case progress >= 50:
		return StatusBehind
	default:
		return StatusCritical
	}
}
