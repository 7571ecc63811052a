package scheduling

import (
	"context"
	"time"

	"ehealth/models"
	"ehealth/utils"
)

// AppointmentFinder is the appointment query the booking check depends on.
type AppointmentFinder interface {
	FindByDoctorAndDate(ctx context.Context, doctorID string, day time.Time) ([]models.Appointment, error)
}

// Service composes the store, the resolver and the validator.
type Service struct {
	Store        AvailabilityStore
	Appointments AppointmentFinder
	Validator    *BookingValidator
}

func NewService(store AvailabilityStore, appointments AppointmentFinder) *Service {
	return &Service{
		Store:        store,
		Appointments: appointments,
		Validator:    NewBookingValidator(),
	}
}

func (s *Service) Availability(ctx context.Context, doctorID string) ([]models.AvailabilityWindow, error) {
	return s.Store.Get(ctx, doctorID)
}

func (s *Service) UpdateAvailability(ctx context.Context, doctorID string, windows []models.AvailabilityWindow) ([]models.AvailabilityWindow, error) {
	return s.Store.Set(ctx, doctorID, windows)
}

// SlotsForDate resolves the labels for a "YYYY-MM-DD" date. Past dates are refused.
func (s *Service) SlotsForDate(ctx context.Context, doctorID, date string) ([]string, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if isBeforeDay(day, s.Validator.now()) {
		return nil, utils.NewValidationError(ReasonPastDate)
	}

	windows, err := s.Store.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return ResolveSlots(windows, day), nil
}

// CheckBooking runs the schedule checks, then loads the doctor's appointments
// for the day and checks for a clash. It returns the canonical label to store.
func (s *Service) CheckBooking(ctx context.Context, doctorID string, day time.Time, label string) (string, error) {
	windows, err := s.Store.Get(ctx, doctorID)
	if err != nil {
		return "", err
	}
	if err := s.Validator.ValidateSchedule(day, label, windows); err != nil {
		return "", err
	}

	canonical, err := CanonicalLabel(label)
	if err != nil {
		return "", err
	}
	existing, err := s.Appointments.FindByDoctorAndDate(ctx, doctorID, StartOfDay(day))
	if err != nil {
		return "", utils.NewUpstreamError("Failed to check existing appointments", err)
	}
	if err := s.Validator.ValidateConflicts(day, canonical, existing); err != nil {
		return "", err
	}
	return canonical, nil
}
