package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ehealth/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeAppointmentNotify = "appointment:notify"

// NewAppointmentNotificationTask builds the queued task for an inbox notification.
func NewAppointmentNotificationTask(payload models.AppointmentNotification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentNotify, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// InboxWriter stores a notification as a message.
type InboxWriter interface {
	Create(ctx context.Context, msg *models.Message) error
}

// Notifier sends appointment notifications.
type Notifier interface {
	Notify(ctx context.Context, payload models.AppointmentNotification) error
	// Remind delivers the payload at the given time.
	Remind(ctx context.Context, payload models.AppointmentNotification, at time.Time) error
}

// QueueNotifier hands notifications to the asynq queue.
type QueueNotifier struct {
	Client Enqueuer
}

func (n *QueueNotifier) Notify(ctx context.Context, payload models.AppointmentNotification) error {
	task, opts, err := NewAppointmentNotificationTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build notification task: %w", err)
	}
	if _, err := n.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

func (n *QueueNotifier) Remind(ctx context.Context, payload models.AppointmentNotification, at time.Time) error {
	task, opts, err := NewAppointmentReminderTask(payload, at)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := n.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// InboxNotifier delivers synchronously. It is used when no queue is configured.
type InboxNotifier struct {
	Inbox InboxWriter
}

func (n *InboxNotifier) Notify(ctx context.Context, payload models.AppointmentNotification) error {
	return DeliverNotification(ctx, n.Inbox, payload)
}

// Remind is dropped without a queue to schedule it on.
func (n *InboxNotifier) Remind(context.Context, models.AppointmentNotification, time.Time) error {
	return nil
}

// DeliverNotification writes the notification into the recipient's inbox.
func DeliverNotification(ctx context.Context, inbox InboxWriter, p models.AppointmentNotification) error {
	if p.RecipientID == "" || p.Content == "" {
		return fmt.Errorf("notification for appointment %s is missing recipient or content", p.AppointmentID)
	}
	msg := &models.Message{
		ID:          uuid.New().String(),
		SenderID:    p.SenderID,
		RecipientID: p.RecipientID,
		Content:     p.Content,
		Appointment: p.AppointmentID,
	}
	return inbox.Create(ctx, msg)
}
