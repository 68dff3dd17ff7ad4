package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/certifications"
)

// ReminderSource computes a user's outstanding reminders. The
// certifications service implements it.
type ReminderSource interface {
	Reminders(ctx context.Context, userID uuid.UUID, now time.Time) ([]*certifications.Reminder, error)
}

// Scheduler periodically pushes reminder notifications to connected
// users.
type Scheduler struct {
	cron   *cron.Cron
	source ReminderSource
	hub    *Hub
	logger *zap.Logger
}

// NewScheduler creates a reminder scheduler. schedule is a cron
// expression, e.g. "@hourly".
func NewScheduler(source ReminderSource, hub *Hub, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		source: source,
		hub:    hub,
		logger: logger,
	}
}

// Start begins the periodic sweep.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Reminder scheduler started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// sweep pushes each connected user's current reminders.
func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	for _, userID := range s.hub.ConnectedUsers() {
		reminders, err := s.source.Reminders(ctx, userID, now)
		if err != nil {
			s.logger.Warn("Failed to compute reminders",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			continue
		}

		for _, reminder := range reminders {
			s.hub.SendToUser(userID, Notification{
				Type:            Type(reminder.Type),
				Message:         reminder.Message,
				CertificationID: reminder.CertificationID,
				Timestamp:       now,
			})
		}
	}
}
