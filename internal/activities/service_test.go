package activities

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/certifications"
	"cpe-compass/portal-backend/internal/verification"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, activity *Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Activity, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Activity), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Activity, int, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*Activity), args.Int(1), args.Error(2)
}

func (m *MockRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockCertLookup is a mock implementation of CertificationLookup
type MockCertLookup struct {
	mock.Mock
}

func (m *MockCertLookup) GetByID(ctx context.Context, id, userID uuid.UUID) (*certifications.Certification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certifications.Certification), args.Error(1)
}

// MockStore is a mock implementation of FileStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(filename string, content io.Reader) (string, error) {
	args := m.Called(filename, content)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Remove(stored string) error {
	args := m.Called(stored)
	return args.Error(0)
}

func (m *MockStore) Path(stored string) string {
	args := m.Called(stored)
	return args.String(0)
}

func newTestService(repo *MockRepository, certs *MockCertLookup, store *MockStore) *Service {
	return NewService(repo, certs, store, verification.NewEngine(zap.NewNop()), zap.NewNop())
}

func TestCreateWithProofFromRecognizedProvider(t *testing.T) {
	repo := new(MockRepository)
	certs := new(MockCertLookup)
	store := new(MockStore)
	service := newTestService(repo, certs, store)
	ctx := context.Background()

	userID := uuid.New()
	cert := &certifications.Certification{ID: uuid.New(), UserID: userID, Authority: "ISC²"}

	certs.On("GetByID", ctx, cert.ID, userID).Return(cert, nil)
	store.On("Save", "certificate.pdf", mock.Anything).Return("certificate_a1b2c3d4.pdf", nil)

	var created *Activity
	repo.On("Create", ctx, mock.AnythingOfType("*activities.Activity")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*Activity) }).
		Return(nil)

	req := &CreateRequest{
		CertificationID: cert.ID,
		ActivityType:    "Training",
		Description:     "SANS incident response training",
		CPEValue:        0.2,
	}
	proof := &ProofUpload{Filename: "certificate.pdf", Content: strings.NewReader("%PDF-1.4")}

	activity, err := service.Create(ctx, userID, req, proof)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "certificate_a1b2c3d4.pdf", activity.ProofFile)
	assert.Equal(t, "certificate.pdf", activity.OriginalFilename)
	assert.True(t, activity.Verified)
	assert.Equal(t, "provider_recognition", activity.VerificationMethod)
	// 0.2 is below the ISC² Training minimum, so the suggestion is lifted.
	assert.Equal(t, 0.5, activity.SuggestedCPEValue)
	assert.Equal(t, 0.2, activity.CPEValue)
	assert.False(t, activity.ActivityDate.IsZero())
}

func TestCreateWithoutProofStaysManual(t *testing.T) {
	repo := new(MockRepository)
	certs := new(MockCertLookup)
	store := new(MockStore)
	service := newTestService(repo, certs, store)
	ctx := context.Background()

	userID := uuid.New()
	cert := &certifications.Certification{ID: uuid.New(), UserID: userID, Authority: "CompTIA"}

	certs.On("GetByID", ctx, cert.ID, userID).Return(cert, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*activities.Activity")).Return(nil)

	req := &CreateRequest{
		CertificationID: cert.ID,
		ActivityType:    "Self-Study",
		Description:     "personal reading",
		CPEValue:        1.0,
	}

	activity, err := service.Create(ctx, userID, req, nil)
	require.NoError(t, err)

	assert.False(t, activity.Verified)
	assert.Equal(t, "manual", activity.VerificationMethod)
	assert.Equal(t, 1.0, activity.SuggestedCPEValue)
	assert.Empty(t, activity.ProofFile)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateCleansUpProofOnRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	certs := new(MockCertLookup)
	store := new(MockStore)
	service := newTestService(repo, certs, store)
	ctx := context.Background()

	userID := uuid.New()
	cert := &certifications.Certification{ID: uuid.New(), UserID: userID, Authority: "OffSec"}

	certs.On("GetByID", ctx, cert.ID, userID).Return(cert, nil)
	store.On("Save", "badge.png", mock.Anything).Return("badge_deadbeef.png", nil)
	store.On("Remove", "badge_deadbeef.png").Return(nil)
	repo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("connection refused"))

	req := &CreateRequest{
		CertificationID: cert.ID,
		ActivityType:    "Training",
		Description:     "OffSec lab work",
		CPEValue:        4.0,
	}
	proof := &ProofUpload{Filename: "badge.png", Content: strings.NewReader("png")}

	_, err := service.Create(ctx, userID, req, proof)
	require.Error(t, err)
	store.AssertCalled(t, "Remove", "badge_deadbeef.png")
}

func TestCreateUnknownCertification(t *testing.T) {
	repo := new(MockRepository)
	certs := new(MockCertLookup)
	store := new(MockStore)
	service := newTestService(repo, certs, store)
	ctx := context.Background()

	userID := uuid.New()
	certID := uuid.New()

	certs.On("GetByID", ctx, certID, userID).Return(nil, certifications.ErrNotFound)

	_, err := service.Create(ctx, userID, &CreateRequest{CertificationID: certID, Description: "x", CPEValue: 1}, nil)
	assert.Equal(t, certifications.ErrNotFound, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteRemovesProofFile(t *testing.T) {
	repo := new(MockRepository)
	certs := new(MockCertLookup)
	store := new(MockStore)
	service := newTestService(repo, certs, store)
	ctx := context.Background()

	userID := uuid.New()
	activity := &Activity{ID: uuid.New(), UserID: userID, ProofFile: "cert_12345678.pdf"}

	repo.On("GetByID", ctx, activity.ID, userID).Return(activity, nil)
	repo.On("Delete", ctx, activity.ID, userID).Return(nil)
	store.On("Remove", "cert_12345678.pdf").Return(nil)

	require.NoError(t, service.Delete(ctx, activity.ID, userID))
	store.AssertCalled(t, "Remove", "cert_12345678.pdf")
}

func TestListClampsPageSize(t *testing.T) {
	repo := new(MockRepository)
	certs := new(MockCertLookup)
	store := new(MockStore)
	service := newTestService(repo, certs, store)
	ctx := context.Background()

	userID := uuid.New()
	repo.On("ListByUser", ctx, userID, ListFilter{Limit: 20, Offset: 0}).
		Return([]*Activity{}, 0, nil)

	_, _, err := service.List(ctx, userID, ListFilter{Limit: 5000, Offset: -3})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProof(t *testing.T) {
	repo := new(MockRepository)
	certs := new(MockCertLookup)
	store := new(MockStore)
	service := newTestService(repo, certs, store)
	ctx := context.Background()

	userID := uuid.New()
	activity := &Activity{ID: uuid.New(), UserID: userID, ProofFile: "slides_0badf00d.pdf", OriginalFilename: "slides.pdf"}

	repo.On("GetByID", ctx, activity.ID, userID).Return(activity, nil)
	store.On("Path", "slides_0badf00d.pdf").Return("/data/uploads/slides_0badf00d.pdf")

	path, name, err := service.Proof(ctx, activity.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "/data/uploads/slides_0badf00d.pdf", path)
	assert.Equal(t, "slides.pdf", name)

	bare := &Activity{ID: uuid.New(), UserID: userID}
	repo.On("GetByID", ctx, bare.ID, userID).Return(bare, nil)
	_, _, err = service.Proof(ctx, bare.ID, userID)
	assert.Error(t, err)
}
