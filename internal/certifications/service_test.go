package certifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, cert *Certification) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Certification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Certification), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Certification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*Certification), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, cert *Certification) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRepository) SumActivityValues(ctx context.Context, certificationID uuid.UUID) (float64, error) {
	args := m.Called(ctx, certificationID)
	return args.Get(0).(float64), args.Error(1)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusComplete, statusFor(100))
	assert.Equal(t, StatusComplete, statusFor(120))
	assert.Equal(t, StatusOnTrack, statusFor(75))
	assert.Equal(t, StatusOnTrack, statusFor(99.9))
	assert.Equal(t, StatusBehind, statusFor(50))
	assert.Equal(t, StatusBehind, statusFor(74.9))
	assert.Equal(t, StatusCritical, statusFor(0))
	assert.Equal(t, StatusCritical, statusFor(49.9))
}

func TestProgressPercentage(t *testing.T) {
	assert.Equal(t, 50.0, progressPercentage(20, 40))
	assert.Equal(t, 100.0, progressPercentage(45, 40))
	// Zero required CPEs counts as complete rather than dividing by zero.
	assert.Equal(t, 100.0, progressPercentage(0, 0))
}

func TestGetComputesSummary(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	cert := &Certification{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "CISSP",
		Authority:    "ISC²",
		RequiredCPEs: 120,
	}

	mockRepo.On("GetByID", ctx, cert.ID, userID).Return(cert, nil)
	mockRepo.On("SumActivityValues", ctx, cert.ID).Return(90.0, nil)

	summary, err := service.Get(ctx, cert.ID, userID)
	require.NoError(t, err)

	assert.Equal(t, 90.0, summary.EarnedCPEs)
	assert.Equal(t, 75.0, summary.ProgressPercentage)
	assert.Equal(t, StatusOnTrack, summary.Status)
}

func TestRemindersRenewalWindow(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())
	ctx := context.Background()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	soon := now.AddDate(0, 0, 30)
	far := now.AddDate(0, 0, 200)

	dueCert := &Certification{ID: uuid.New(), UserID: userID, Name: "CISSP", RequiredCPEs: 120, RenewalDate: &soon}
	farCert := &Certification{ID: uuid.New(), UserID: userID, Name: "CEH", RequiredCPEs: 120, RenewalDate: &far}

	mockRepo.On("ListByUser", ctx, userID).Return([]*Certification{dueCert, farCert}, nil)
	mockRepo.On("SumActivityValues", ctx, dueCert.ID).Return(60.0, nil)
	mockRepo.On("SumActivityValues", ctx, farCert.ID).Return(60.0, nil)

	reminders, err := service.Reminders(ctx, userID, now)
	require.NoError(t, err)

	require.Len(t, reminders, 1)
	assert.Equal(t, ReminderTypeRenewal, reminders[0].Type)
	assert.Equal(t, dueCert.ID, reminders[0].CertificationID)
	assert.Contains(t, reminders[0].Message, "60.0 more CPEs")
}

func TestRemindersLowProgress(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	userID := uuid.New()

	cert := &Certification{ID: uuid.New(), UserID: userID, Name: "OSCP", RequiredCPEs: 100}

	mockRepo.On("ListByUser", ctx, userID).Return([]*Certification{cert}, nil)
	mockRepo.On("SumActivityValues", ctx, cert.ID).Return(10.0, nil)

	reminders, err := service.Reminders(ctx, userID, now)
	require.NoError(t, err)

	require.Len(t, reminders, 1)
	assert.Equal(t, ReminderTypeLowProgress, reminders[0].Type)
	assert.Contains(t, reminders[0].Message, "10.0%")
}

func TestRemindersNoneWhenComplete(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	userID := uuid.New()
	soon := now.AddDate(0, 0, 10)

	cert := &Certification{ID: uuid.New(), UserID: userID, Name: "CISM", RequiredCPEs: 20, RenewalDate: &soon}

	mockRepo.On("ListByUser", ctx, userID).Return([]*Certification{cert}, nil)
	mockRepo.On("SumActivityValues", ctx, cert.ID).Return(40.0, nil)

	reminders, err := service.Reminders(ctx, userID, now)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}
