// File: database/repository/user/userMongoCrud.go
package userRepo

import (
	"context"
	"fmt"
	"time"

	"ehealth/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Availability == nil {
		user.Availability = []models.AvailabilityWindow{}
	}

	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) updateFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := newContext(ctx)
	defer cancel()

	fields["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return errNotFoundFor(id)
	}
	return nil
}

// UpdateProfile replaces the name and embedded profile.
func (r *MongoUserRepo) UpdateProfile(ctx context.Context, id, name string, profile models.Profile) error {
	return r.updateFields(ctx, id, bson.M{"name": name, "profile": profile})
}

// UpdateStatus sets the account status.
func (r *MongoUserRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.updateFields(ctx, id, bson.M{"status": status})
}

// UpdateTokenHash stores or clears the active token hash.
func (r *MongoUserRepo) UpdateTokenHash(ctx context.Context, id, tokenHash string) error {
	return r.updateFields(ctx, id, bson.M{"tokenHash": tokenHash})
}

// SetAvailability overwrites the embedded availability array in a single $set.
func (r *MongoUserRepo) SetAvailability(ctx context.Context, id string, windows []models.AvailabilityWindow) error {
	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}
	return r.updateFields(ctx, id, bson.M{"availability": windows})
}
