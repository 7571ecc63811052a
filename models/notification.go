package models

// AppointmentNotification is the queued payload that becomes an inbox message.
type AppointmentNotification struct {
	AppointmentID string `json:"appointmentId"`
	SenderID      string `json:"senderId"`
	RecipientID   string `json:"recipientId"`
	Content       string `json:"content"`
}
