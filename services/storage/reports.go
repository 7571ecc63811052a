package storage

import (
	"context"
	"strings"
	"time"

	"ehealth/models"
	"ehealth/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ReasonNotAuthorizedView = "Not authorized to view these reports"

// Upload stores the file and records it against the patient. Patients always
// upload for themselves; other roles name the patient.
func (s *DefaultReportService) Upload(ctx context.Context, caller models.Caller, in UploadReportInput) (*models.Report, error) {
	if in.Content == nil {
		return nil, utils.NewValidationError("No file uploaded")
	}
	patientID := in.PatientID
	if caller.IsPatient() {
		patientID = caller.ID
	}
	if patientID == "" {
		return nil, utils.NewValidationError("Patient is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = models.DefaultReportDescription
	}

	file, err := s.Blobs.Upload(ctx, in.Content, ReportFolder)
	if err != nil {
		utils.GetLogger().Error("Failed to upload report", zap.String("patientID", patientID), zap.Error(err))
		return nil, utils.NewUpstreamError("Failed to upload report", err)
	}

	report := &models.Report{
		ID:          uuid.New().String(),
		PatientID:   patientID,
		UploadedBy:  caller.ID,
		FileURL:     file.URL,
		PublicID:    file.PublicID,
		FileName:    in.FileName,
		FileType:    in.FileType,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := s.Reports.Create(ctx, report); err != nil {
		if delErr := s.Blobs.Delete(ctx, file.PublicID); delErr != nil {
			utils.GetLogger().Warn("Failed to remove orphaned report file",
				zap.String("publicID", file.PublicID), zap.Error(delErr))
		}
		return nil, utils.NewUpstreamError("Failed to save report", err)
	}
	return report, nil
}

// ListForPatient returns reports newest first. Patients only see their own.
func (s *DefaultReportService) ListForPatient(ctx context.Context, caller models.Caller, patientID string) ([]models.Report, error) {
	if caller.IsPatient() && caller.ID != patientID {
		return nil, utils.NewUnauthorizedError(ReasonNotAuthorizedView)
	}
	reports, err := s.Reports.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch reports", err)
	}
	return reports, nil
}
