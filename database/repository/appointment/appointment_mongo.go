package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ehealth/models"
	"ehealth/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by MongoDB.
// uniqueActiveSlots adds a partial unique index on (doctor, date, time) for active appointments.
func NewMongoAppointmentRepo(db *mongo.Database, uniqueActiveSlots bool) AppointmentRepository {
	repo := &mongoAppointmentRepo{coll: db.Collection("appointments")}
	if err := repo.ensureIndexes(context.Background(), uniqueActiveSlots); err != nil {
		utils.GetLogger().Warn("failed to create appointment indexes", zap.Error(err))
	}
	return repo
}

func newContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, utils.DBTimeout)
}

func (r *mongoAppointmentRepo) ensureIndexes(ctx context.Context, uniqueActiveSlots bool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetName("doctor_date_idx")},
		{Keys: bson.D{{Key: "patient", Value: 1}}, Options: options.Index().SetName("patient_idx")},
	}
	if uniqueActiveSlots {
		indexes = append(indexes, mongo.IndexModel{
			Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetName("active_slot_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		})
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new appointment.
func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	appt.Active = models.IsActiveStatus(appt.Status)

	_, err := r.coll.InsertOne(ctx, appt)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

// GetByID fetches a single appointment.
func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// listOrder puts the newest day first and, within a day, the earliest booked.
// Slot labels do not sort chronologically as strings.
var listOrder = bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: 1}}

// FindByDoctorAndDate matches the doctor's appointments within [day, day+24h).
func (r *mongoAppointmentRepo) FindByDoctorAndDate(ctx context.Context, doctorID string, day time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"doctor": doctorID,
		"date":   bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)},
	}
	appts, err := r.find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments for doctor %s: %w", doctorID, err)
	}
	return appts, nil
}

// ListForUser returns every appointment the user takes part in.
func (r *mongoAppointmentRepo) ListForUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	filter := bson.M{"$or": []bson.M{{"patient": userID}, {"doctor": userID}}}
	opts := options.Find().SetSort(listOrder)
	appts, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments for user %s: %w", userID, err)
	}
	return appts, nil
}

// ListBetween returns appointments dated in the inclusive range.
func (r *mongoAppointmentRepo) ListBetween(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	filter := bson.M{"date": bson.M{"$gte": start, "$lte": end}}
	appts, err := r.find(ctx, filter, options.Find().SetSort(listOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments between %s and %s: %w", start, end, err)
	}
	return appts, nil
}

// ExistsBetween checks for any appointment linking patient and doctor.
func (r *mongoAppointmentRepo) ExistsBetween(ctx context.Context, patientID, doctorID string) (bool, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"patient": patientID, "doctor": doctorID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check appointments between %s and %s: %w", patientID, doctorID, err)
	}
	return n > 0, nil
}

// DoctorIDsForPatient returns the distinct doctor IDs the patient has booked.
func (r *mongoAppointmentRepo) DoctorIDsForPatient(ctx context.Context, patientID string) ([]string, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "doctor", bson.M{"patient": patientID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctors for patient %s: %w", patientID, err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// CountByStatus counts appointments in a status, or all when status is empty.
func (r *mongoAppointmentRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return n, nil
}

func (r *mongoAppointmentRepo) findOneAndSet(ctx context.Context, id string, fields bson.M) (*models.Appointment, error) {
	ctx, cancel := newContext(ctx)
	defer cancel()

	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": fields}, opts).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateStatus sets the status and keeps the active flag in step with it.
func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	appt, err := r.findOneAndSet(ctx, id, bson.M{"status": status, "active": models.IsActiveStatus(status)})
	if err != nil {
		return nil, fmt.Errorf("failed to update status of appointment %s: %w", id, err)
	}
	return appt, nil
}

// UpdateNotes sets the doctor's notes and prescription.
func (r *mongoAppointmentRepo) UpdateNotes(ctx context.Context, id, notes, prescription string) (*models.Appointment, error) {
	appt, err := r.findOneAndSet(ctx, id, bson.M{"notes": notes, "prescription": prescription})
	if err != nil {
		return nil, fmt.Errorf("failed to update notes of appointment %s: %w", id, err)
	}
	return appt, nil
}
