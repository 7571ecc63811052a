package models

import "time"

const (
	AppointmentPending   = "pending"
	AppointmentApproved  = "approved"
	AppointmentRejected  = "rejected"
	AppointmentCompleted = "completed"
)

// Appointment is a booking of one slot label on one calendar day.
// Active mirrors status pending|approved and backs the optional unique slot index.
type Appointment struct {
	ID           string    `bson:"id" json:"id"`
	PatientID    string    `bson:"patient" json:"patient"`
	DoctorID     string    `bson:"doctor" json:"doctor"`
	Date         time.Time `bson:"date" json:"date"`
	Time         string    `bson:"time" json:"time"`
	Status       string    `bson:"status" json:"status"`
	Active       bool      `bson:"active" json:"-"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Prescription string    `bson:"prescription,omitempty" json:"prescription,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentDetail is an appointment with its patient and doctor populated.
type AppointmentDetail struct {
	ID           string       `json:"id"`
	Patient      *UserSummary `json:"patient"`
	Doctor       *UserSummary `json:"doctor"`
	Date         time.Time    `json:"date"`
	Time         string       `json:"time"`
	Status       string       `json:"status"`
	Notes        string       `json:"notes,omitempty"`
	Prescription string       `json:"prescription,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// BookAppointmentRequest is the body of POST /appointments.
// Patient is only read when the caller is not a patient.
type BookAppointmentRequest struct {
	Doctor  string `json:"doctor"`
	Patient string `json:"patient"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateNotesRequest struct {
	Notes        string `json:"notes"`
	Prescription string `json:"prescription"`
}

// IsActiveStatus reports whether an appointment in this status still occupies its slot.
func IsActiveStatus(status string) bool {
	return status == AppointmentPending || status == AppointmentApproved
}

func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentPending, AppointmentApproved, AppointmentRejected, AppointmentCompleted:
		return true
	}
	return false
}
