package tasks

import (
	"encoding/json"
	"time"

	"ehealth/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "appointment:reminder"

// ReminderLead is how long before the appointment the reminder fires.
const ReminderLead = time.Hour

func NewAppointmentReminderTask(payload models.AppointmentNotification, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}

	return task, opts, nil
}
