package user

import (
	"context"

	"ehealth/models"
	"ehealth/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch users", err)
	}
	return users, nil
}

// CreateUser lets an admin create an account of any role, optionally inactive.
func (s *DefaultUserService) CreateUser(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := validateRegistration(&req); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to check for existing user", err)
	}
	if existing != nil {
		return nil, utils.NewValidationError(ReasonDuplicateEmail)
	}

	user, err := newUser(req)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, utils.NewUpstreamError("Failed to create user", err)
	}
	if err := s.insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserStatus activates or deactivates an account. Deactivation revokes the current token.
func (s *DefaultUserService) UpdateUserStatus(ctx context.Context, id, status string) error {
	if !models.IsValidStatus(status) {
		return utils.NewValidationError("Invalid status value")
	}
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return utils.NewUpstreamError("Failed to update user status", err)
	}
	clearAuthCache(ctx, id)
	return nil
}
