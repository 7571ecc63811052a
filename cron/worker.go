package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ehealth/config"
	"ehealth/models"
	"ehealth/services/tasks"
	"ehealth/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt points asynq at the queue database.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewServeMux routes notification and reminder tasks into the inbox.
func NewServeMux(inbox tasks.InboxWriter) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentNotify, HandleNotificationTask(inbox))
	mux.HandleFunc(tasks.TypeAppointmentReminder, HandleNotificationTask(inbox))
	return mux
}

// InitNotificationWorker runs the async worker in background. The returned
// server must be shut down by the caller.
func InitNotificationWorker(inbox tasks.InboxWriter) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewServeMux(inbox)

	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Warn("Notification worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Notification worker gave up; notifications stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleNotificationTask writes the task payload into the recipient's inbox.
// Malformed payloads are dropped since a retry cannot fix them.
func HandleNotificationTask(inbox tasks.InboxWriter) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.AppointmentNotification
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("Invalid notification payload", zap.String("type", task.Type()), zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		if err := tasks.DeliverNotification(ctx, inbox, p); err != nil {
			utils.GetLogger().Error("Failed to deliver notification",
				zap.String("appointmentID", p.AppointmentID), zap.String("recipientID", p.RecipientID), zap.Error(err))
			return err
		}
		return nil
	}
}
