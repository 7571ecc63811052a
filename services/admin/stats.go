package admin

import (
	"context"

	userRepo "ehealth/database/repository/user"
	"ehealth/models"
	"ehealth/utils"
)

// Stats gathers the dashboard counters and chart series.
func (s *DefaultAdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	countUsers := func(f userRepo.CountFilter) (int64, error) { return s.Users.Count(ctx, f) }
	countAppts := func(status string) (int64, error) { return s.Appointments.CountByStatus(ctx, status) }

	stats := &models.AdminStats{}
	var admins, approved, completed, rejected int64
	steps := []struct {
		dst *int64
		run func() (int64, error)
	}{
		{&stats.TotalUsers, func() (int64, error) { return countUsers(userRepo.CountFilter{}) }},
		{&stats.ActiveUsers, func() (int64, error) { return countUsers(userRepo.CountFilter{Status: models.StatusActive}) }},
		{&stats.Doctors, func() (int64, error) { return countUsers(userRepo.CountFilter{Role: models.RoleDoctor}) }},
		{&stats.Patients, func() (int64, error) { return countUsers(userRepo.CountFilter{Role: models.RolePatient}) }},
		{&admins, func() (int64, error) { return countUsers(userRepo.CountFilter{Role: models.RoleAdmin}) }},
		{&stats.Appointments, func() (int64, error) { return countAppts("") }},
		{&stats.PendingAppointments, func() (int64, error) { return countAppts(models.AppointmentPending) }},
		{&approved, func() (int64, error) { return countAppts(models.AppointmentApproved) }},
		{&completed, func() (int64, error) { return countAppts(models.AppointmentCompleted) }},
		{&rejected, func() (int64, error) { return countAppts(models.AppointmentRejected) }},
	}
	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			return nil, utils.NewUpstreamError("Failed to fetch admin stats", err)
		}
		*step.dst = n
	}

	recent, err := s.Users.GetRecent(ctx, recentUsersLimit)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to fetch admin stats", err)
	}
	stats.RecentUsers = recent

	stats.UsersByRole = []models.ChartPoint{
		{Name: "Patients", Value: stats.Patients},
		{Name: "Doctors", Value: stats.Doctors},
		{Name: "Admins", Value: admins},
	}
	stats.AppointmentsByStatus = []models.ChartPoint{
		{Name: "Pending", Value: stats.PendingAppointments},
		{Name: "Approved", Value: approved},
		{Name: "Completed", Value: completed},
		{Name: "Rejected", Value: rejected},
	}
	return stats, nil
}
