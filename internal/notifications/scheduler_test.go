package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/certifications"
)

type stubReminderSource struct {
	reminders []*certifications.Reminder
}

func (s *stubReminderSource) Reminders(ctx context.Context, userID uuid.UUID, now time.Time) ([]*certifications.Reminder, error) {
	return s.reminders, nil
}

func TestSweepPushesRemindersToConnectedUsers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	userID := uuid.New()
	client := dialTestHub(t, hub, userID)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	certID := uuid.New()
	source := &stubReminderSource{reminders: []*certifications.Reminder{
		{
			Type:            certifications.ReminderTypeRenewal,
			Message:         "CISSP renewal is in 45 days and you need 20.0 more CPEs",
			CertificationID: certID,
		},
	}}

	scheduler := NewScheduler(source, hub, zap.NewNop())
	scheduler.sweep()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received Notification
	require.NoError(t, client.ReadJSON(&received))

	assert.Equal(t, TypeRenewal, received.Type)
	assert.Equal(t, certID, received.CertificationID)
}

func TestSchedulerStartStop(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	scheduler := NewScheduler(&stubReminderSource{}, hub, zap.NewNop())
	require.NoError(t, scheduler.Start("@hourly"))
	scheduler.Stop()

	assert.Error(t, scheduler.Start("not a schedule"))
}
