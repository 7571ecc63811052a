package models

import "time"

type Message struct {
	ID          string    `bson:"id" json:"id"`
	SenderID    string    `bson:"sender" json:"sender"`
	RecipientID string    `bson:"recipient" json:"recipient"`
	Content     string    `bson:"content" json:"content"`
	Appointment string    `bson:"appointment,omitempty" json:"appointment,omitempty"`
	Read        bool      `bson:"read" json:"read"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// MessageView is a message with sender and recipient populated.
type MessageView struct {
	ID          string       `json:"id"`
	Sender      *UserSummary `json:"sender"`
	Recipient   *UserSummary `json:"recipient"`
	Content     string       `json:"content"`
	Appointment string       `json:"appointment,omitempty"`
	Read        bool         `json:"read"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ConversationSummary describes one inbox thread from the caller's side.
type ConversationSummary struct {
	Partner     *UserSummary `json:"partner"`
	LastMessage *Message     `json:"lastMessage"`
	UnreadCount int64        `json:"unreadCount"`
}

type SendMessageRequest struct {
	Recipient   string `json:"recipient"`
	Content     string `json:"content"`
	Appointment string `json:"appointment"`
}
