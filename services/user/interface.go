package user

import (
	"context"

	appointmentRepo "ehealth/database/repository/appointment"
	userRepo "ehealth/database/repository/user"
	"ehealth/models"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID string) error

	// Directory
	GetDoctors(ctx context.Context) ([]models.User, error)
	GetMyDoctors(ctx context.Context, patientID string) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, caller models.Caller, id string, req models.UpdateUserRequest) (*models.User, error)

	// Admin
	GetAllUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	UpdateUserStatus(ctx context.Context, id, status string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo         userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
}

func NewUserService(repo userRepo.UserRepository, appts appointmentRepo.AppointmentRepository) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Appointments: appts}
}
