package userRepo

import (
	"context"
	"errors"
	"time"

	"ehealth/models"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
var ErrDuplicateEmail = errors.New("user with this email already exists")

// CountFilter narrows Count; empty fields match everything.
type CountFilter struct {
	Role   string
	Status string
}

// UserRepository defines methods for user data access.
// Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs retrieves every user whose ID is listed.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]models.User, error)
	// GetByRole retrieves all users holding a role.
	GetByRole(ctx context.Context, role string) ([]models.User, error)
	// GetRecent retrieves the newest users first.
	GetRecent(ctx context.Context, limit int64) ([]models.User, error)
	// GetCreatedBetween retrieves users created within [start, end].
	GetCreatedBetween(ctx context.Context, start, end time.Time) ([]models.User, error)
	Count(ctx context.Context, filter CountFilter) (int64, error)
	UpdateProfile(ctx context.Context, id, name string, profile models.Profile) error
	UpdateStatus(ctx context.Context, id, status string) error
	// UpdateTokenHash stores the hash of the current access token; empty revokes it.
	UpdateTokenHash(ctx context.Context, id, tokenHash string) error
	// SetAvailability overwrites the doctor's whole availability array.
	SetAvailability(ctx context.Context, id string, windows []models.AvailabilityWindow) error
}
