package recordsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ehealth/models"
	"ehealth/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new medical record and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, record *models.MedicalRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()
	if record.Date.IsZero() {
		record.Date = now
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("failed to insert medical record: %w", err)
	}
	return record.ID, nil
}

// GetByID returns a medical record by its ID.
func (r *mongoRecordRepo) GetByID(ctx context.Context, id string) (*models.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	var record models.MedicalRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medical record %s: %w", id, err)
	}
	return &record, nil
}

// ListByPatient fetches all records of a patient.
func (r *mongoRecordRepo) ListByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"patient": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medical records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.MedicalRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode medical records: %w", err)
	}
	return records, nil
}

// Update rewrites the mutable fields of a record.
func (r *mongoRecordRepo) Update(ctx context.Context, record *models.MedicalRecord) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	record.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"diagnosis":    record.Diagnosis,
		"notes":        record.Notes,
		"prescription": record.Prescription,
		"updatedAt":    record.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": record.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update medical record %s: %w", record.ID, err)
	}
	if res.MatchedCount == 0 {
		return errors.New("record not found")
	}
	return nil
}
