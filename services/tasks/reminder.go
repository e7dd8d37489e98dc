package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"slotwise/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds an asynq task that delivers a session reminder at
// fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues reminder tasks on the shared redis queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// ScheduleReminder enqueues a reminder for the booking, to fire at fireAt.
func (s *AsynqReminderScheduler) ScheduleReminder(bookingID string, fireAt time.Time) error {
	task, opts, err := NewReminderTask(models.ReminderPayload{BookingID: bookingID}, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", bookingID, err)
	}
	return nil
}
