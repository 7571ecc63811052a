package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	recordsRepo "ehealth/database/repository/records"
	reportRepo "ehealth/database/repository/report"
	"ehealth/models"

	"github.com/google/uuid"
)

type RecordRepo struct {
	mu      sync.RWMutex
	records map[string]models.MedicalRecord
}

func NewRecordRepo() *RecordRepo {
	return &RecordRepo{records: make(map[string]models.MedicalRecord)}
}

var _ recordsRepo.MedicalRecordRepository = (*RecordRepo)(nil)

func (r *RecordRepo) Create(_ context.Context, record *models.MedicalRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()
	if record.Date.IsZero() {
		record.Date = now
	}
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = *record
	return record.ID, nil
}

func (r *RecordRepo) GetByID(_ context.Context, id string) (*models.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *RecordRepo) ListByPatient(_ context.Context, patientID string) ([]models.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.MedicalRecord{}
	for _, rec := range r.records {
		if rec.PatientID == patientID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *RecordRepo) Update(_ context.Context, record *models.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[record.ID]
	if !ok {
		return errors.New("record not found")
	}
	existing.Diagnosis = record.Diagnosis
	existing.Notes = record.Notes
	existing.Prescription = record.Prescription
	existing.UpdatedAt = time.Now()
	r.records[record.ID] = existing
	return nil
}

type ReportRepo struct {
	mu      sync.RWMutex
	reports []models.Report
}

func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

var _ reportRepo.ReportRepository = (*ReportRepo)(nil)

func (r *ReportRepo) Create(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	report.CreatedAt = time.Now()
	r.reports = append(r.reports, *report)
	return nil
}

func (r *ReportRepo) ListByPatient(_ context.Context, patientID string) ([]models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Report{}
	for i := len(r.reports) - 1; i >= 0; i-- {
		if r.reports[i].PatientID == patientID {
			out = append(out, r.reports[i])
		}
	}
	return out, nil
}
