package message

import (
	"context"
	"strings"

	appointmentRepo "ehealth/database/repository/appointment"
	messageRepo "ehealth/database/repository/message"
	userRepo "ehealth/database/repository/user"
	"ehealth/models"
	"ehealth/utils"

	"github.com/google/uuid"
)

const (
	ReasonRecipientNotFound = "Recipient not found"
	ReasonNoAppointment     = "You can only message doctors you have appointments with"
)

type MessageService interface {
	Send(ctx context.Context, caller models.Caller, req models.SendMessageRequest) (*models.MessageView, error)
	Conversation(ctx context.Context, caller models.Caller, partnerID string) ([]models.MessageView, error)
	Conversations(ctx context.Context, caller models.Caller) ([]models.ConversationSummary, error)
	MarkRead(ctx context.Context, caller models.Caller, senderID string) error
}

type DefaultMessageService struct {
	Messages     messageRepo.MessageRepository
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
}

func NewMessageService(msgs messageRepo.MessageRepository, users userRepo.UserRepository, appts appointmentRepo.AppointmentRepository) *DefaultMessageService {
	return &DefaultMessageService{Messages: msgs, Users: users, Appointments: appts}
}

// Send stores a message. A patient may only write to a doctor they have booked with.
func (s *DefaultMessageService) Send(ctx context.Context, caller models.Caller, req models.SendMessageRequest) (*models.MessageView, error) {
	content := strings.TrimSpace(req.Content)
	if req.Recipient == "" || content == "" {
		return nil, utils.NewValidationError("Recipient and content are required")
	}
	recipient, err := s.Users.GetByID(ctx, req.Recipient)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to load recipient", err)
	}
	if recipient == nil {
		return nil, utils.NewNotFoundError(ReasonRecipientNotFound)
	}

	if caller.IsPatient() && recipient.Role == models.RoleDoctor {
		ok, err := s.Appointments.ExistsBetween(ctx, caller.ID, recipient.ID)
		if err != nil {
			return nil, utils.NewUpstreamError("Failed to check appointments", err)
		}
		if !ok {
			return nil, utils.NewUnauthorizedError(ReasonNoAppointment)
		}
	}

	msg := &models.Message{
		ID:          uuid.New().String(),
		SenderID:    caller.ID,
		RecipientID: recipient.ID,
		Content:     content,
		Appointment: req.Appointment,
	}
	if err := s.Messages.Create(ctx, msg); err != nil {
		return nil, utils.NewUpstreamError("Failed to send message", err)
	}

	views, err := s.populate(ctx, []models.Message{*msg})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Conversation returns both directions of the thread, oldest first.
func (s *DefaultMessageService) Conversation(ctx context.Context, caller models.Caller, partnerID string) ([]models.MessageView, error) {
	msgs, err := s.Messages.Conversation(ctx, caller.ID, partnerID)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch conversation", err)
	}
	return s.populate(ctx, msgs)
}

func (s *DefaultMessageService) Conversations(ctx context.Context, caller models.Caller) ([]models.ConversationSummary, error) {
	partnerIDs, err := s.Messages.PartnerIDs(ctx, caller.ID)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch conversations", err)
	}
	partners, err := s.summaries(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.ConversationSummary, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		last, err := s.Messages.LastBetween(ctx, caller.ID, id)
		if err != nil {
			return nil, utils.NewUpstreamError("Failed to fetch conversations", err)
		}
		unread, err := s.Messages.CountUnread(ctx, id, caller.ID)
		if err != nil {
			return nil, utils.NewUpstreamError("Failed to fetch conversations", err)
		}
		out = append(out, models.ConversationSummary{
			Partner:     partners[id],
			LastMessage: last,
			UnreadCount: unread,
		})
	}
	return out, nil
}

// MarkRead flags everything senderID sent to the caller as read.
func (s *DefaultMessageService) MarkRead(ctx context.Context, caller models.Caller, senderID string) error {
	if _, err := s.Messages.MarkRead(ctx, senderID, caller.ID); err != nil {
		return utils.NewUpstreamError("Failed to mark messages as read", err)
	}
	return nil
}

func (s *DefaultMessageService) summaries(ctx context.Context, ids []string) (map[string]*models.UserSummary, error) {
	out := map[string]*models.UserSummary{}
	if len(ids) == 0 {
		return out, nil
	}
	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to load users", err)
	}
	for i := range users {
		out[users[i].ID] = users[i].Summary()
	}
	return out, nil
}

func (s *DefaultMessageService) populate(ctx context.Context, msgs []models.Message) ([]models.MessageView, error) {
	seen := map[string]bool{}
	var ids []string
	for _, m := range msgs {
		for _, id := range []string{m.SenderID, m.RecipientID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	users, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, models.MessageView{
			ID:          m.ID,
			Sender:      users[m.SenderID],
			Recipient:   users[m.RecipientID],
			Content:     m.Content,
			Appointment: m.Appointment,
			Read:        m.Read,
			CreatedAt:   m.CreatedAt,
		})
	}
	return views, nil
}
