package storage

import (
	"context"
	"io"

	reportRepo "ehealth/database/repository/report"
	"ehealth/models"
)

// ReportFolder is the blob store folder medical reports are uploaded into.
const ReportFolder = "medical-reports"

// BlobStore defines the blob storage operations reports depend on.
type BlobStore interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*models.UploadedFile, error)
	Delete(ctx context.Context, publicID string) error
}

// UploadReportInput is one multipart upload.
type UploadReportInput struct {
	PatientID   string
	Description string
	FileName    string
	FileType    string
	Content     io.Reader
}

type ReportService interface {
	Upload(ctx context.Context, caller models.Caller, in UploadReportInput) (*models.Report, error)
	ListForPatient(ctx context.Context, caller models.Caller, patientID string) ([]models.Report, error)
}

// DefaultReportService is the production implementation.
type DefaultReportService struct {
	Blobs   BlobStore
	Reports reportRepo.ReportRepository
}

func NewReportService(blobs BlobStore, reports reportRepo.ReportRepository) *DefaultReportService {
	return &DefaultReportService{Blobs: blobs, Reports: reports}
}
