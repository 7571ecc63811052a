package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "ehealth/database/repository/appointment"
	"ehealth/models"
)

// AppointmentRepo mirrors the Mongo repository. With UniqueActiveSlots it
// rejects a second active appointment for the same doctor, day and time.
type AppointmentRepo struct {
	UniqueActiveSlots bool

	mu    sync.RWMutex
	appts map[string]models.Appointment
}

func NewAppointmentRepo(uniqueActiveSlots bool) *AppointmentRepo {
	return &AppointmentRepo{UniqueActiveSlots: uniqueActiveSlots, appts: make(map[string]models.Appointment)}
}

var _ appointmentRepo.AppointmentRepository = (*AppointmentRepo)(nil)

func (r *AppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt.Active = models.IsActiveStatus(appt.Status)
	if r.UniqueActiveSlots && appt.Active {
		for _, a := range r.appts {
			if a.Active && a.DoctorID == appt.DoctorID && a.Date.Equal(appt.Date) && a.Time == appt.Time {
				return appointmentRepo.ErrSlotTaken
			}
		}
	}
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	r.appts[appt.ID] = *appt
	return nil
}

func (r *AppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AppointmentRepo) filter(keep func(models.Appointment) bool) []models.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, a := range r.appts {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *AppointmentRepo) FindByDoctorAndDate(_ context.Context, doctorID string, day time.Time) ([]models.Appointment, error) {
	next := day.AddDate(0, 0, 1)
	return r.filter(func(a models.Appointment) bool {
		return a.DoctorID == doctorID && !a.Date.Before(day) && a.Date.Before(next)
	}), nil
}

func (r *AppointmentRepo) ListForUser(_ context.Context, userID string) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool {
		return a.PatientID == userID || a.DoctorID == userID
	}), nil
}

func (r *AppointmentRepo) ListBetween(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool {
		return !a.Date.Before(start) && !a.Date.After(end)
	}), nil
}

func (r *AppointmentRepo) ExistsBetween(_ context.Context, patientID, doctorID string) (bool, error) {
	found := r.filter(func(a models.Appointment) bool {
		return a.PatientID == patientID && a.DoctorID == doctorID
	})
	return len(found) > 0, nil
}

func (r *AppointmentRepo) DoctorIDsForPatient(_ context.Context, patientID string) ([]string, error) {
	seen := map[string]bool{}
	ids := []string{}
	for _, a := range r.filter(func(a models.Appointment) bool { return a.PatientID == patientID }) {
		if !seen[a.DoctorID] {
			seen[a.DoctorID] = true
			ids = append(ids, a.DoctorID)
		}
	}
	return ids, nil
}

func (r *AppointmentRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	n := len(r.filter(func(a models.Appointment) bool { return status == "" || a.Status == status }))
	return int64(n), nil
}

func (r *AppointmentRepo) update(id string, apply func(*models.Appointment)) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appts[id]
	if !ok {
		return nil
	}
	apply(&a)
	a.UpdatedAt = time.Now()
	r.appts[id] = a
	return &a
}

func (r *AppointmentRepo) UpdateStatus(_ context.Context, id, status string) (*models.Appointment, error) {
	return r.update(id, func(a *models.Appointment) {
		a.Status = status
		a.Active = models.IsActiveStatus(status)
	}), nil
}

func (r *AppointmentRepo) UpdateNotes(_ context.Context, id, notes, prescription string) (*models.Appointment, error) {
	return r.update(id, func(a *models.Appointment) {
		a.Notes = notes
		a.Prescription = prescription
	}), nil
}
