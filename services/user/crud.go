package user

import (
	"context"

	"ehealth/models"
	"ehealth/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetDoctors(ctx context.Context) ([]models.User, error) {
	doctors, err := s.Repo.GetByRole(ctx, models.RoleDoctor)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch doctors", err)
	}
	return doctors, nil
}

// GetMyDoctors returns the distinct doctors the patient has booked with.
func (s *DefaultUserService) GetMyDoctors(ctx context.Context, patientID string) ([]models.User, error) {
	ids, err := s.Appointments.DoctorIDsForPatient(ctx, patientID)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch appointments", err)
	}
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	doctors, err := s.Repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch doctors", err)
	}
	return doctors, nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch user", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError(ReasonUserNotFound)
	}
	return user, nil
}

// mergeProfile applies the non-nil fields of update. Doctor-only fields are
// dropped unless the target user is a doctor.
func mergeProfile(current models.Profile, update *models.ProfileUpdate, role string) models.Profile {
	if update == nil {
		return current
	}
	if update.Age != nil {
		current.Age = *update.Age
	}
	if update.Gender != nil {
		current.Gender = *update.Gender
	}
	if update.Phone != nil {
		current.Phone = *update.Phone
	}
	if update.Address != nil {
		current.Address = *update.Address
	}
	if update.BloodGroup != nil {
		current.BloodGroup = *update.BloodGroup
	}
	if role == models.RoleDoctor {
		if update.Specialization != nil {
			current.Specialization = *update.Specialization
		}
		if update.License != nil {
			current.License = *update.License
		}
	}
	return current
}

// UpdateUser changes name and profile. Only the user themself or an admin may do so.
func (s *DefaultUserService) UpdateUser(ctx context.Context, caller models.Caller, id string, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.ID != id && !caller.IsAdmin() {
		return nil, utils.NewUnauthorizedError("Not authorized")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	user.Profile = mergeProfile(user.Profile, req.Profile, user.Role)

	if err := s.Repo.UpdateProfile(ctx, id, user.Name, user.Profile); err != nil {
		utils.GetLogger().Error("Failed to update profile", zap.String("userID", id), zap.Error(err))
		return nil, utils.NewUpstreamError("Failed to update profile", err)
	}
	return user, nil
}
