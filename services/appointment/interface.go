package appointment

import (
	"context"

	appointmentRepo "ehealth/database/repository/appointment"
	userRepo "ehealth/database/repository/user"
	"ehealth/models"
	"ehealth/services/scheduling"
	"ehealth/services/tasks"
)

type AppointmentService interface {
	// Book validates the request against the doctor's schedule and inserts a pending appointment.
	Book(ctx context.Context, caller models.Caller, req models.BookAppointmentRequest) (*models.Appointment, error)
	// ListForUser returns the user's appointments as patient or doctor, populated.
	ListForUser(ctx context.Context, caller models.Caller, userID string) ([]models.AppointmentDetail, error)
	UpdateStatus(ctx context.Context, caller models.Caller, id, status string) (*models.Appointment, error)
	UpdateNotes(ctx context.Context, caller models.Caller, id string, req models.UpdateNotesRequest) (*models.Appointment, error)
}

// DefaultAppointmentService is the production implementation.
// Notifier may be nil, in which case no notifications are sent.
type DefaultAppointmentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Scheduling   *scheduling.Service
	Notifier     tasks.Notifier
}

func NewAppointmentService(appts appointmentRepo.AppointmentRepository, users userRepo.UserRepository, sched *scheduling.Service, notifier tasks.Notifier) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Appointments: appts,
		Users:        users,
		Scheduling:   sched,
		Notifier:     notifier,
	}
}
