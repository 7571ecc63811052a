package admin

import (
	"context"
	"time"

	appointmentRepo "ehealth/database/repository/appointment"
	userRepo "ehealth/database/repository/user"
	"ehealth/models"
)

const (
	ReportAppointments = "appointments"
	ReportUsers        = "users"
	// DefaultReportWindow is the range used when a report omits its dates.
	DefaultReportWindow = 30 * 24 * time.Hour
	recentUsersLimit    = 5
)

// Populator expands appointment references into user summaries.
type Populator interface {
	Populate(ctx context.Context, appts []models.Appointment) ([]models.AppointmentDetail, error)
}

type AdminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	AppointmentReport(ctx context.Context, start, end time.Time) (*models.AppointmentReport, error)
	UserReport(ctx context.Context, start, end time.Time) ([]models.User, error)
	// Report dispatches on the report type with raw query dates.
	Report(ctx context.Context, reportType, startDate, endDate string) (interface{}, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
	Populator    Populator
	Now          func() time.Time
}

func NewAdminService(users userRepo.UserRepository, appts appointmentRepo.AppointmentRepository, populator Populator) *DefaultAdminService {
	return &DefaultAdminService{
		Users:        users,
		Appointments: appts,
		Populator:    populator,
		Now:          time.Now,
	}
}
