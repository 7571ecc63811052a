package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"ehealth/models"
)

// ErrSlotTaken is returned by Create when the unique active-slot index rejects the insert.
var ErrSlotTaken = errors.New("slot already booked")

// AppointmentRepository defines appointment persistence.
// Lookups return (nil, nil) when nothing matches.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindByDoctorAndDate returns the doctor's appointments on the calendar day starting at day.
	FindByDoctorAndDate(ctx context.Context, doctorID string, day time.Time) ([]models.Appointment, error)
	// ListForUser returns appointments where the user is patient or doctor, newest date first.
	ListForUser(ctx context.Context, userID string) ([]models.Appointment, error)
	// ListBetween returns appointments dated within [start, end], newest first.
	ListBetween(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
	// ExistsBetween reports whether any appointment links the patient and doctor.
	ExistsBetween(ctx context.Context, patientID, doctorID string) (bool, error)
	// DoctorIDsForPatient lists the distinct doctors a patient has booked.
	DoctorIDsForPatient(ctx context.Context, patientID string) ([]string, error)
	// CountByStatus counts appointments; empty status counts all.
	CountByStatus(ctx context.Context, status string) (int64, error)
	// UpdateStatus sets the status and returns the updated appointment, or nil when missing.
	UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error)
	// UpdateNotes sets notes and prescription and returns the updated appointment, or nil when missing.
	UpdateNotes(ctx context.Context, id, notes, prescription string) (*models.Appointment, error)
}
