package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	userRepo "ehealth/database/repository/user"
	"ehealth/models"
	"ehealth/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	ReasonUserNotFound       = "User not found"
	ReasonInvalidCredentials = "Invalid credentials"
	ReasonInactive           = "Account is inactive. Please contact administrator."
	ReasonDuplicateEmail     = "User with this email already exists"
	minPasswordLength        = 6
)

// validateRegistration checks the request and fills in the default role and status.
func validateRegistration(req *models.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return utils.NewValidationError("Name, email and password are required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return utils.NewValidationError("Invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return utils.NewValidationError("Password must be at least 6 characters long")
	}

	if req.Role == "" {
		req.Role = models.RolePatient
	}
	if !models.IsValidRole(req.Role) {
		return utils.NewValidationError("Invalid role")
	}
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if !models.IsValidStatus(req.Status) {
		return utils.NewValidationError("Invalid status value")
	}
	if req.Role == models.RoleDoctor && (req.Profile.Specialization == "" || req.Profile.License == "") {
		return utils.NewValidationError("Doctors require a specialization and license")
	}
	return nil
}

// newUser builds the stored user. Only doctors keep specialization and license.
func newUser(req models.RegisterRequest) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	profile := req.Profile
	if req.Role != models.RoleDoctor {
		profile.Specialization = ""
		profile.License = ""
	}
	now := time.Now()
	return &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Status:       req.Status,
		Profile:      profile,
		Availability: []models.AvailabilityWindow{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *DefaultUserService) insert(ctx context.Context, user *models.User) error {
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return utils.NewValidationError(ReasonDuplicateEmail)
		}
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return utils.NewUpstreamError("Registration failed, please try again", err)
	}
	return nil
}

// Register creates a patient or doctor account and signs it in. Admins are created through CreateUser.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Status = models.StatusActive
	if err := validateRegistration(&req); err != nil {
		return nil, err
	}
	if req.Role == models.RoleAdmin {
		return nil, utils.NewValidationError("Invalid role")
	}

	user, err := newUser(req)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, utils.NewUpstreamError("Registration failed, please try again", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Role, utils.TokenTTL())
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, utils.NewUpstreamError("Registration failed, please try again", err)
	}
	user.TokenHash = utils.HashToken(token)

	if err := s.insert(ctx, user); err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token}, nil
}

// Login verifies credentials, rotates the stored token hash and returns the new token.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user for authentication", zap.Error(err))
		return nil, utils.NewUpstreamError("Authentication failed, please try again", err)
	}
	if user == nil {
		return nil, utils.NewValidationError(ReasonUserNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.NewValidationError(ReasonInvalidCredentials)
	}
	if user.Status == models.StatusInactive {
		return nil, utils.NewUnauthorizedError(ReasonInactive)
	}

	token, err := utils.GenerateToken(user.ID, user.Role, utils.TokenTTL())
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, utils.NewUpstreamError("Authentication failed, please try again", err)
	}
	if err := s.Repo.UpdateTokenHash(ctx, user.ID, utils.HashToken(token)); err != nil {
		utils.GetLogger().Error("Failed to update user with token hash", zap.Error(err))
		return nil, utils.NewUpstreamError("Authentication failed, please try again", err)
	}
	clearAuthCache(ctx, user.ID)

	return &models.AuthResponse{Token: token}, nil
}

// Logout clears the stored token hash so the current token stops working.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateTokenHash(ctx, userID, ""); err != nil {
		utils.GetLogger().Error("Failed to revoke user auth token", zap.String("userID", userID), zap.Error(err))
		return utils.NewUpstreamError("Failed to logout, please try again", err)
	}
	clearAuthCache(ctx, userID)
	return nil
}

func clearAuthCache(ctx context.Context, userID string) {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return
	}
	if err := authCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.String("userID", userID), zap.Error(err))
	}
}
