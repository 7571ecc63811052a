package recordsRepo

import (
	"context"

	"ehealth/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// MedicalRecordRepository persists doctor-authored medical records.
type MedicalRecordRepository interface {
	Create(ctx context.Context, record *models.MedicalRecord) (string, error)
	// GetByID returns (nil, nil) when the record does not exist.
	GetByID(ctx context.Context, id string) (*models.MedicalRecord, error)
	// ListByPatient returns the patient's records, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error)
	Update(ctx context.Context, record *models.MedicalRecord) error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new MedicalRecordRepository instance using MongoDB.
func NewMongoRecordRepo(db *mongo.Database) MedicalRecordRepository {
	return &mongoRecordRepo{
		coll: db.Collection("medical_records"),
	}
}
