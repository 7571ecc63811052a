package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ehealth/database/repository/memory"
	"ehealth/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "t1", Type: task.Type()}, nil
}

func TestQueueNotifierEnqueuesPayload(t *testing.T) {
	enq := &recordingEnqueuer{}
	n := &QueueNotifier{Client: enq}
	payload := models.AppointmentNotification{AppointmentID: "a1", SenderID: "p1", RecipientID: "d1", Content: "New appointment request"}

	require.NoError(t, n.Notify(context.Background(), payload))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeAppointmentNotify, enq.tasks[0].Type())

	var got models.AppointmentNotification
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &got))
	assert.Equal(t, payload, got)
}

func TestQueueNotifierPropagatesEnqueueError(t *testing.T) {
	n := &QueueNotifier{Client: &recordingEnqueuer{err: errors.New("redis down")}}
	err := n.Notify(context.Background(), models.AppointmentNotification{RecipientID: "d1", Content: "x"})
	assert.Error(t, err)
}

func TestInboxNotifierWritesMessage(t *testing.T) {
	inbox := memory.NewMessageRepo()
	n := &InboxNotifier{Inbox: inbox}

	err := n.Notify(context.Background(), models.AppointmentNotification{AppointmentID: "a1", SenderID: "p1", RecipientID: "d1", Content: "hello"})
	require.NoError(t, err)

	conv, _ := inbox.Conversation(context.Background(), "p1", "d1")
	require.Len(t, conv, 1)
	assert.Equal(t, "hello", conv[0].Content)
	assert.Equal(t, "a1", conv[0].Appointment)
	assert.False(t, conv[0].Read)
}

func TestDeliverNotificationRejectsIncompletePayload(t *testing.T) {
	err := DeliverNotification(context.Background(), memory.NewMessageRepo(), models.AppointmentNotification{AppointmentID: "a1"})
	assert.Error(t, err)
}

func TestQueueNotifierRemindSchedulesReminder(t *testing.T) {
	enq := &recordingEnqueuer{}
	n := &QueueNotifier{Client: enq}

	err := n.Remind(context.Background(), models.AppointmentNotification{RecipientID: "p1", Content: "soon"}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeAppointmentReminder, enq.tasks[0].Type())
}

func TestInboxNotifierRemindIsNoop(t *testing.T) {
	inbox := memory.NewMessageRepo()
	n := &InboxNotifier{Inbox: inbox}

	require.NoError(t, n.Remind(context.Background(), models.AppointmentNotification{RecipientID: "p1", SenderID: "d1", Content: "soon"}, time.Now()))
	conv, _ := inbox.Conversation(context.Background(), "p1", "d1")
	assert.Empty(t, conv)
}
