package reportRepo

import (
	"context"
	"fmt"
	"time"

	"ehealth/models"
	"ehealth/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportRepository persists metadata of uploaded reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	// ListByPatient returns the patient's reports, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]models.Report, error)
}

type mongoReportRepo struct {
	coll *mongo.Collection
}

func NewMongoReportRepo(db *mongo.Database) ReportRepository {
	return &mongoReportRepo{coll: db.Collection("reports")}
}

func (r *mongoReportRepo) Create(ctx context.Context, report *models.Report) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	report.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

func (r *mongoReportRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"patient": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}
