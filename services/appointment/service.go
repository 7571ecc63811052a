package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "ehealth/database/repository/appointment"
	"ehealth/models"
	"ehealth/services/scheduling"
	"ehealth/services/tasks"
	"ehealth/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ReasonAppointmentNotFound = "Appointment not found"
	ReasonPatientNotFound     = "Patient not found"
	ReasonInvalidStatus       = "Invalid status value"
	ReasonNotAuthorizedUpdate = "Not authorized to update this appointment"
	ReasonNotAuthorizedView   = "Not authorized to view these appointments"
)

// transitions lists the statuses reachable from each status.
var transitions = map[string][]string{
	models.AppointmentPending:  {models.AppointmentApproved, models.AppointmentRejected},
	models.AppointmentApproved: {models.AppointmentCompleted},
}

// CanTransition reports whether an appointment may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *DefaultAppointmentService) Book(ctx context.Context, caller models.Caller, req models.BookAppointmentRequest) (*models.Appointment, error) {
	patientID := caller.ID
	if !caller.IsPatient() {
		if req.Patient == "" {
			return nil, utils.NewValidationError("Patient is required")
		}
		patient, err := s.Users.GetByID(ctx, req.Patient)
		if err != nil {
			return nil, utils.NewUpstreamError("Failed to load patient", err)
		}
		if patient == nil || patient.Role != models.RolePatient {
			return nil, utils.NewNotFoundError(ReasonPatientNotFound)
		}
		patientID = patient.ID
	}
	if req.Doctor == "" || strings.TrimSpace(req.Time) == "" {
		return nil, utils.NewValidationError("Doctor, date and time are required")
	}

	day, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	label, err := s.Scheduling.CheckBooking(ctx, req.Doctor, day, strings.TrimSpace(req.Time))
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		PatientID: patientID,
		DoctorID:  req.Doctor,
		Date:      scheduling.StartOfDay(day),
		Time:      label,
		Status:    models.AppointmentPending,
		Active:    true,
		Notes:     req.Notes,
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, utils.NewValidationError(scheduling.ReasonSlotTaken)
		}
		return nil, utils.NewUpstreamError("Failed to book appointment", err)
	}

	s.notify(ctx, models.AppointmentNotification{
		AppointmentID: appt.ID,
		SenderID:      patientID,
		RecipientID:   appt.DoctorID,
		Content:       fmt.Sprintf("New appointment request for %s at %s", scheduling.LocalDay(appt.Date).Format("2006-01-02"), appt.Time),
	})
	return appt, nil
}

func (s *DefaultAppointmentService) ListForUser(ctx context.Context, caller models.Caller, userID string) ([]models.AppointmentDetail, error) {
	if caller.ID != userID && !caller.IsAdmin() {
		return nil, utils.NewUnauthorizedError(ReasonNotAuthorizedView)
	}
	appts, err := s.Appointments.ListForUser(ctx, userID)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch appointments", err)
	}
	return s.Populate(ctx, appts)
}

// Populate replaces patient and doctor IDs with user summaries.
func (s *DefaultAppointmentService) Populate(ctx context.Context, appts []models.Appointment) ([]models.AppointmentDetail, error) {
	seen := map[string]bool{}
	ids := []string{}
	for _, a := range appts {
		for _, id := range []string{a.PatientID, a.DoctorID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	byID := map[string]*models.UserSummary{}
	if len(ids) > 0 {
		users, err := s.Users.GetByIDs(ctx, ids)
		if err != nil {
			return nil, utils.NewUpstreamError("Failed to load appointment participants", err)
		}
		for i := range users {
			byID[users[i].ID] = users[i].Summary()
		}
	}

	out := make([]models.AppointmentDetail, 0, len(appts))
	for _, a := range appts {
		out = append(out, models.AppointmentDetail{
			ID:           a.ID,
			Patient:      byID[a.PatientID],
			Doctor:       byID[a.DoctorID],
			Date:         a.Date,
			Time:         a.Time,
			Status:       a.Status,
			Notes:        a.Notes,
			Prescription: a.Prescription,
			CreatedAt:    a.CreatedAt,
			UpdatedAt:    a.UpdatedAt,
		})
	}
	return out, nil
}

// loadForUpdate fetches the appointment and checks the caller is its doctor or an admin.
func (s *DefaultAppointmentService) loadForUpdate(ctx context.Context, caller models.Caller, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to load appointment", err)
	}
	if appt == nil {
		return nil, utils.NewNotFoundError(ReasonAppointmentNotFound)
	}
	if appt.DoctorID != caller.ID && !caller.IsAdmin() {
		return nil, utils.NewUnauthorizedError(ReasonNotAuthorizedUpdate)
	}
	return appt, nil
}

func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, caller models.Caller, id, status string) (*models.Appointment, error) {
	if !models.IsValidAppointmentStatus(status) {
		return nil, utils.NewValidationError(ReasonInvalidStatus)
	}
	appt, err := s.loadForUpdate(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == status {
		return appt, nil
	}
	if !CanTransition(appt.Status, status) {
		return nil, utils.NewValidationError(fmt.Sprintf("Cannot change appointment status from %s to %s", appt.Status, status))
	}

	updated, err := s.Appointments.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to update appointment", err)
	}
	if updated == nil {
		return nil, utils.NewNotFoundError(ReasonAppointmentNotFound)
	}

	payload := models.AppointmentNotification{
		AppointmentID: updated.ID,
		SenderID:      caller.ID,
		RecipientID:   updated.PatientID,
		Content:       fmt.Sprintf("Your appointment on %s at %s is now %s", scheduling.LocalDay(updated.Date).Format("2006-01-02"), updated.Time, status),
	}
	s.notify(ctx, payload)
	if status == models.AppointmentApproved {
		s.scheduleReminder(ctx, updated, caller.ID)
	}
	return updated, nil
}

func (s *DefaultAppointmentService) UpdateNotes(ctx context.Context, caller models.Caller, id string, req models.UpdateNotesRequest) (*models.Appointment, error) {
	if _, err := s.loadForUpdate(ctx, caller, id); err != nil {
		return nil, err
	}
	updated, err := s.Appointments.UpdateNotes(ctx, id, req.Notes, req.Prescription)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to update appointment", err)
	}
	if updated == nil {
		return nil, utils.NewNotFoundError(ReasonAppointmentNotFound)
	}
	return updated, nil
}

// StartsAt combines the calendar day with the slot label.
func StartsAt(appt *models.Appointment) (time.Time, error) {
	minutes, err := scheduling.ParseLabel(appt.Time)
	if err != nil {
		return time.Time{}, err
	}
	return scheduling.LocalDay(appt.Date).Add(time.Duration(minutes) * time.Minute), nil
}

func (s *DefaultAppointmentService) scheduleReminder(ctx context.Context, appt *models.Appointment, senderID string) {
	if s.Notifier == nil {
		return
	}
	start, err := StartsAt(appt)
	if err != nil {
		return
	}
	fireAt := start.Add(-tasks.ReminderLead)
	if fireAt.Before(s.now()) {
		return
	}
	payload := models.AppointmentNotification{
		AppointmentID: appt.ID,
		SenderID:      senderID,
		RecipientID:   appt.PatientID,
		Content:       fmt.Sprintf("Reminder: your appointment starts at %s", appt.Time),
	}
	if err := s.Notifier.Remind(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Warn("Failed to schedule appointment reminder",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Scheduling != nil && s.Scheduling.Validator != nil && s.Scheduling.Validator.Now != nil {
		return s.Scheduling.Validator.Now()
	}
	return time.Now()
}

// notify never fails the request; delivery problems are logged.
func (s *DefaultAppointmentService) notify(ctx context.Context, payload models.AppointmentNotification) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, payload); err != nil {
		utils.GetLogger().Warn("Failed to send appointment notification",
			zap.String("appointmentID", payload.AppointmentID), zap.Error(err))
	}
}
