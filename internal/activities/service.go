package activities

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/certifications"
	"cpe-compass/portal-backend/internal/verification"
)

// FileStore persists proof documents. *storage.LocalStore implements it.
type FileStore interface {
	Save(filename string, content io.Reader) (string, error)
	Remove(stored string) error
	Path(stored string) string
}

// CertificationLookup resolves the certification an activity is logged
// against. The certifications repository implements it.
type CertificationLookup interface {
	GetByID(ctx context.Context, id, userID uuid.UUID) (*certifications.Certification, error)
}

// Verifier judges an activity. *verification.Engine implements it.
type Verifier interface {
	Verify(input verification.ActivityInput) verification.Verdict
}

// ProofUpload is an optional proof document accompanying a new activity.
type ProofUpload struct {
	Filename string
	Content  io.Reader
}

// Service provides business logic for activity operations
type Service struct {
	repo     Repository
	certs    CertificationLookup
	store    FileStore
	verifier Verifier
	logger   *zap.Logger
}

// NewService creates a new activities service
func NewService(repo Repository, certs CertificationLookup, store FileStore, verifier Verifier, logger *zap.Logger) *Service {
	return &Service{repo: repo, certs: certs, store: store, verifier: verifier, logger: logger}
}

// Create logs an activity, storing the proof document if one was attached
// and persisting the verification verdict alongside the record. The
// verdict is advisory: verification can degrade but never blocks creation.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRequest, proof *ProofUpload) (*Activity, error) {
	cert, err := s.certs.GetByID(ctx, req.CertificationID, userID)
	if err != nil {
		return nil, err
	}

	activity := &Activity{
		ID:              uuid.New(),
		UserID:          userID,
		CertificationID: cert.ID,
		ActivityType:    req.ActivityType,
		Description:     req.Description,
		CPEValue:        req.CPEValue,
		ActivityDate:    req.ActivityDate,
		CreatedAt:       time.Now(),
	}
	if activity.ActivityDate.IsZero() {
		activity.ActivityDate = activity.CreatedAt
	}

	if proof != nil {
		stored, err := s.store.Save(proof.Filename, proof.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store proof document: %w", err)
		}
		activity.ProofFile = stored
		activity.OriginalFilename = proof.Filename
	}

	verdict := s.verifier.Verify(verification.ActivityInput{
		Description:   req.Description,
		DeclaredType:  req.ActivityType,
		DeclaredValue: req.CPEValue,
		Authority:     verification.Authority(cert.Authority),
		HasProof:      proof != nil,
	})
	activity.Verified = verdict.Verified
	activity.SuggestedCPEValue = verdict.SuggestedValue
	activity.VerificationMethod = string(verdict.Method)
	activity.VerificationNotes = verdict.Notes

	if err := s.repo.Create(ctx, activity); err != nil {
		if activity.ProofFile != "" {
			s.store.Remove(activity.ProofFile)
		}
		return nil, err
	}

	s.logger.Info("Activity logged",
		zap.String("activity_id", activity.ID.String()),
		zap.String("certification_id", cert.ID.String()),
		zap.Bool("verified", activity.Verified),
		zap.String("method", activity.VerificationMethod))

	return activity, nil
}

// Get retrieves one activity.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*Activity, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// List retrieves a page of a user's activities, optionally filtered by
// certification. It returns the page and the total match count.
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Activity, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListByUser(ctx, userID, filter)
}

// Delete removes an activity and its stored proof document.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	activity, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	if activity.ProofFile != "" {
		if err := s.store.Remove(activity.ProofFile); err != nil {
			s.logger.Warn("Failed to remove proof document",
				zap.String("proof_file", activity.ProofFile),
				zap.Error(err))
		}
	}

	s.logger.Info("Activity deleted", zap.String("activity_id", id.String()))
	return nil
}

// Proof returns the on-disk path and original filename of an activity's
// proof document.
func (s *Service) Proof(ctx context.Context, id, userID uuid.UUID) (path, originalName string, err error) {
	activity, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return "", "", err
	}
	if activity.ProofFile == "" {
		return "", "", fmt.Errorf("activity has no proof document")
	}
	return s.store.Path(activity.ProofFile), activity.OriginalFilename, nil
}
