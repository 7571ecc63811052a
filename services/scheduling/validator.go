package scheduling

import (
	"time"

	"ehealth/models"
	"ehealth/utils"
)

const (
	ReasonPastDate       = "Cannot book an appointment in the past"
	ReasonNoAvailability = "This doctor has not set their availability yet"
	ReasonOutsideHours   = "The selected time is not within doctor's available hours"
	ReasonSlotTaken      = "Doctor already has an appointment at this time"
)

// ReasonNotAvailableOn is the rejection for a weekday without a window.
func ReasonNotAvailableOn(day time.Weekday) string {
	return "Doctor is not available on " + day.String()
}

// BookingValidator decides whether a slot may be booked. Checks run in a fixed
// order and the first failure wins.
type BookingValidator struct {
	Now func() time.Time
}

func NewBookingValidator() *BookingValidator {
	return &BookingValidator{Now: time.Now}
}

func (v *BookingValidator) now() time.Time {
	if v == nil || v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

// Validate runs every check against date, label and the doctor's appointments on that date.
func (v *BookingValidator) Validate(date time.Time, label string, windows []models.AvailabilityWindow, existing []models.Appointment) error {
	if err := v.ValidateSchedule(date, label, windows); err != nil {
		return err
	}
	return v.ValidateConflicts(date, label, existing)
}

// ValidateSchedule rejects past dates, missing availability and labels outside the weekday's ranges.
func (v *BookingValidator) ValidateSchedule(date time.Time, label string, windows []models.AvailabilityWindow) error {
	if isBeforeDay(date, v.now()) {
		return utils.NewValidationError(ReasonPastDate)
	}
	if len(windows) == 0 {
		return utils.NewValidationError(ReasonNoAvailability)
	}
	window, ok := WindowFor(windows, date)
	if !ok {
		return utils.NewValidationError(ReasonNotAvailableOn(date.Weekday()))
	}

	requested, err := ParseLabel(label)
	if err != nil {
		return err
	}
	for _, r := range window.Slots {
		start, end, ok := parseRange(r)
		if ok && start <= requested && requested < end {
			return nil
		}
	}
	return utils.NewValidationError(ReasonOutsideHours)
}

// ValidateConflicts rejects the label when a pending or approved appointment on
// the same day already holds it. Rejected and completed appointments do not block.
func (v *BookingValidator) ValidateConflicts(date time.Time, label string, existing []models.Appointment) error {
	requested, err := ParseLabel(label)
	if err != nil {
		return err
	}
	for _, a := range existing {
		if !models.IsActiveStatus(a.Status) || !sameDay(a.Date, date) {
			continue
		}
		if a.Time == label {
			return utils.NewValidationError(ReasonSlotTaken)
		}
		if held, err := ParseLabel(a.Time); err == nil && held == requested {
			return utils.NewValidationError(ReasonSlotTaken)
		}
	}
	return nil
}
