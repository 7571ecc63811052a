package records

import (
	"context"
	"strings"
	"time"

	recordsRepo "ehealth/database/repository/records"
	userRepo "ehealth/database/repository/user"
	"ehealth/models"
	"ehealth/utils"

	"github.com/google/uuid"
)

const (
	ReasonNotAuthorizedView   = "Not authorized to view these records"
	ReasonDoctorsOnlyCreate   = "Only doctors can create medical records"
	ReasonDoctorsOnlyUpdate   = "Only doctors can update medical records"
	ReasonRecordNotFound      = "Record not found"
	ReasonNotAuthorizedUpdate = "Not authorized to update this record"
)

type RecordService interface {
	ListForPatient(ctx context.Context, caller models.Caller, patientID string) ([]models.MedicalRecordView, error)
	Create(ctx context.Context, caller models.Caller, req models.CreateRecordRequest) (*models.MedicalRecord, error)
	Update(ctx context.Context, caller models.Caller, id string, req models.UpdateRecordRequest) (*models.MedicalRecord, error)
}

type DefaultRecordService struct {
	Records recordsRepo.MedicalRecordRepository
	Users   userRepo.UserRepository
}

func NewRecordService(records recordsRepo.MedicalRecordRepository, users userRepo.UserRepository) *DefaultRecordService {
	return &DefaultRecordService{Records: records, Users: users}
}

// ListForPatient is open to the patient themself and to any doctor.
func (s *DefaultRecordService) ListForPatient(ctx context.Context, caller models.Caller, patientID string) ([]models.MedicalRecordView, error) {
	if caller.ID != patientID && !caller.IsDoctor() {
		return nil, utils.NewUnauthorizedError(ReasonNotAuthorizedView)
	}
	recs, err := s.Records.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch medical records", err)
	}

	seen := map[string]bool{}
	var ids []string
	for _, r := range recs {
		if !seen[r.DoctorID] {
			seen[r.DoctorID] = true
			ids = append(ids, r.DoctorID)
		}
	}
	doctors := map[string]*models.UserSummary{}
	if len(ids) > 0 {
		users, err := s.Users.GetByIDs(ctx, ids)
		if err != nil {
			return nil, utils.NewUpstreamError("Failed to fetch medical records", err)
		}
		for i := range users {
			doctors[users[i].ID] = users[i].Summary()
		}
	}

	views := make([]models.MedicalRecordView, 0, len(recs))
	for _, r := range recs {
		views = append(views, models.MedicalRecordView{MedicalRecord: r, Doctor: doctors[r.DoctorID]})
	}
	return views, nil
}

func (s *DefaultRecordService) Create(ctx context.Context, caller models.Caller, req models.CreateRecordRequest) (*models.MedicalRecord, error) {
	if !caller.IsDoctor() {
		return nil, utils.NewUnauthorizedError(ReasonDoctorsOnlyCreate)
	}
	if req.Patient == "" || strings.TrimSpace(req.Diagnosis) == "" {
		return nil, utils.NewValidationError("Patient and diagnosis are required")
	}
	patient, err := s.Users.GetByID(ctx, req.Patient)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to load patient", err)
	}
	if patient == nil || patient.Role != models.RolePatient {
		return nil, utils.NewNotFoundError("Patient not found")
	}

	rec := &models.MedicalRecord{
		ID:           uuid.New().String(),
		PatientID:    patient.ID,
		DoctorID:     caller.ID,
		Date:         time.Now(),
		Diagnosis:    strings.TrimSpace(req.Diagnosis),
		Notes:        req.Notes,
		Prescription: req.Prescription,
		Appointment:  req.Appointment,
	}
	if _, err := s.Records.Create(ctx, rec); err != nil {
		return nil, utils.NewUpstreamError("Failed to create medical record", err)
	}
	return rec, nil
}

// Update lets the authoring doctor change the non-empty fields of req.
func (s *DefaultRecordService) Update(ctx context.Context, caller models.Caller, id string, req models.UpdateRecordRequest) (*models.MedicalRecord, error) {
	if !caller.IsDoctor() {
		return nil, utils.NewUnauthorizedError(ReasonDoctorsOnlyUpdate)
	}
	rec, err := s.Records.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to load medical record", err)
	}
	if rec == nil {
		return nil, utils.NewNotFoundError(ReasonRecordNotFound)
	}
	if rec.DoctorID != caller.ID {
		return nil, utils.NewUnauthorizedError(ReasonNotAuthorizedUpdate)
	}

	if req.Diagnosis != "" {
		rec.Diagnosis = req.Diagnosis
	}
	if req.Notes != "" {
		rec.Notes = req.Notes
	}
	if req.Prescription != "" {
		rec.Prescription = req.Prescription
	}
	if err := s.Records.Update(ctx, rec); err != nil {
		return nil, utils.NewUpstreamError("Failed to update medical record", err)
	}
	return rec, nil
}
