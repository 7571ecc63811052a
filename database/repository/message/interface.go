package messageRepo

import (
	"context"

	"ehealth/models"
)

// MessageRepository persists direct messages between users.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// Conversation returns messages exchanged by a and b, oldest first.
	Conversation(ctx context.Context, a, b string) ([]models.Message, error)
	// PartnerIDs returns everyone the user has sent to or received from.
	PartnerIDs(ctx context.Context, userID string) ([]string, error)
	// LastBetween returns the newest message exchanged by a and b, or nil.
	LastBetween(ctx context.Context, a, b string) (*models.Message, error)
	// CountUnread counts unread messages from sender to recipient.
	CountUnread(ctx context.Context, senderID, recipientID string) (int64, error)
	// MarkRead flags every message from sender to recipient as read.
	MarkRead(ctx context.Context, senderID, recipientID string) (int64, error)
}
