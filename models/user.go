// models/user.go
package models

import "time"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents a platform user. Doctors additionally carry weekly availability.
type User struct {
	ID           string               `bson:"id" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"passwordHash" json:"-"`
	TokenHash    string               `bson:"tokenHash,omitempty" json:"-"`
	Role         string               `bson:"role" json:"role"`
	Status       string               `bson:"status" json:"status"`
	Profile      Profile              `bson:"profile" json:"profile"`
	Availability []AvailabilityWindow `bson:"availability" json:"availability"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Profile holds optional personal data. Specialization and License only apply to doctors.
type Profile struct {
	Age            int    `bson:"age,omitempty" json:"age,omitempty"`
	Gender         string `bson:"gender,omitempty" json:"gender,omitempty"`
	Phone          string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address        string `bson:"address,omitempty" json:"address,omitempty"`
	BloodGroup     string `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	Specialization string `bson:"specialization,omitempty" json:"specialization,omitempty"`
	License        string `bson:"license,omitempty" json:"license,omitempty"`
}

// ProfileUpdate carries a partial profile; nil fields are left untouched.
type ProfileUpdate struct {
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	BloodGroup     *string `json:"bloodGroup"`
	Specialization *string `json:"specialization"`
	License        *string `json:"license"`
}

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID             string `bson:"id" json:"id"`
	Name           string `bson:"name" json:"name"`
	Email          string `bson:"email,omitempty" json:"email,omitempty"`
	Role           string `bson:"role,omitempty" json:"role,omitempty"`
	Specialization string `bson:"specialization,omitempty" json:"specialization,omitempty"`
}

// Summary projects a user into its populated reference form.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Specialization: u.Profile.Specialization,
	}
}

func IsValidRole(role string) bool {
	switch role {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

func IsValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
