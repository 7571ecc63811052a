package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"ehealth/database/repository/memory"
	"ehealth/models"
	"ehealth/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*DefaultUserService, *memory.UserRepo, *memory.AppointmentRepo) {
	users := memory.NewUserRepo()
	appts := memory.NewAppointmentRepo(false)
	return NewUserService(users, appts), users, appts
}

func messageOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %v", err)
	return appErr.Message
}

func doctorRequest(email string) models.RegisterRequest {
	return models.RegisterRequest{
		Name:     "Dr Who",
		Email:    email,
		Password: "secret123",
		Role:     models.RoleDoctor,
		Profile:  models.Profile{Specialization: "Cardiology", License: "LIC-1"},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	resp, err := svc.Register(ctx, models.RegisterRequest{Name: "Pat", Email: "Pat@Example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := utils.ExtractClaimsFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, claims.Role)

	stored, err := repo.GetByEmail(ctx, "pat@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
	assert.NotEqual(t, "secret123", stored.PasswordHash)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "pat@example.com", Password: "secret123"})
	require.NoError(t, err)
	stored, _ = repo.GetByID(ctx, stored.ID)
	assert.Equal(t, utils.HashToken(login.Token), stored.TokenHash)

	require.NoError(t, svc.Logout(ctx, stored.ID))
	stored, _ = repo.GetByID(ctx, stored.ID)
	assert.Empty(t, stored.TokenHash)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterRequest
		want string
	}{
		{"missing fields", models.RegisterRequest{Email: "a@b.io"}, "Name, email and password are required"},
		{"bad email", models.RegisterRequest{Name: "A", Email: "nope", Password: "secret123"}, "Invalid email address"},
		{"short password", models.RegisterRequest{Name: "A", Email: "a@b.io", Password: "123"}, "Password must be at least 6 characters long"},
		{"unknown role", models.RegisterRequest{Name: "A", Email: "a@b.io", Password: "secret123", Role: "nurse"}, "Invalid role"},
		{"self-registered admin", models.RegisterRequest{Name: "A", Email: "a@b.io", Password: "secret123", Role: models.RoleAdmin}, "Invalid role"},
		{"doctor without license", models.RegisterRequest{Name: "A", Email: "a@b.io", Password: "secret123", Role: models.RoleDoctor, Profile: models.Profile{Specialization: "ENT"}}, "Doctors require a specialization and license"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService()
			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, messageOf(t, err))
			assert.Equal(t, 400, utils.StatusCode(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Register(ctx, doctorRequest("doc@x.io"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, doctorRequest("doc@x.io"))
	assert.Equal(t, ReasonDuplicateEmail, messageOf(t, err))
}

func TestRegisterPatientDropsDoctorFields(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	req := models.RegisterRequest{Name: "Pat", Email: "pat@x.io", Password: "secret123", Profile: models.Profile{Age: 30, License: "fake"}}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	stored, _ := repo.GetByEmail(ctx, "pat@x.io")
	assert.Empty(t, stored.Profile.License)
	assert.Equal(t, 30, stored.Profile.Age)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Login(ctx, models.LoginRequest{Email: "ghost@x.io", Password: "x"})
	assert.Equal(t, ReasonUserNotFound, messageOf(t, err))
	assert.Equal(t, 400, utils.StatusCode(err))

	inactive := doctorRequest("off@x.io")
	inactive.Status = models.StatusInactive
	_, err = svc.CreateUser(ctx, inactive)
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "off@x.io", Password: "wrong-pass"})
	assert.Equal(t, ReasonInvalidCredentials, messageOf(t, err))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "off@x.io", Password: "secret123"})
	assert.Equal(t, ReasonInactive, messageOf(t, err))
	assert.Equal(t, 403, utils.StatusCode(err))
}

func TestCreateUserAndStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	user, err := svc.CreateUser(ctx, models.RegisterRequest{Name: "Root", Email: "root@x.io", Password: "secret123", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, models.StatusActive, user.Status)

	_, err = svc.CreateUser(ctx, models.RegisterRequest{Name: "Root", Email: "root@x.io", Password: "secret123"})
	assert.Equal(t, ReasonDuplicateEmail, messageOf(t, err))

	require.NoError(t, svc.UpdateUserStatus(ctx, user.ID, models.StatusInactive))
	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, got.Status)

	err = svc.UpdateUserStatus(ctx, "missing", models.StatusActive)
	assert.Equal(t, 404, utils.StatusCode(err))
	err = svc.UpdateUserStatus(ctx, user.ID, "banned")
	assert.Equal(t, 400, utils.StatusCode(err))
}

func TestUpdateUserFiltersDoctorFieldsForPatients(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	pat, err := svc.CreateUser(ctx, models.RegisterRequest{Name: "Pat", Email: "pat@x.io", Password: "secret123"})
	require.NoError(t, err)
	doc, err := svc.CreateUser(ctx, doctorRequest("doc@x.io"))
	require.NoError(t, err)

	phone, specialty := "555", "Neurology"
	update := models.UpdateUserRequest{Name: "Patricia", Profile: &models.ProfileUpdate{Phone: &phone, Specialization: &specialty}}

	updated, err := svc.UpdateUser(ctx, models.Caller{ID: pat.ID, Role: models.RolePatient}, pat.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Patricia", updated.Name)
	assert.Equal(t, "555", updated.Profile.Phone)
	assert.Empty(t, updated.Profile.Specialization)

	updated, err = svc.UpdateUser(ctx, models.Caller{ID: "adm", Role: models.RoleAdmin}, doc.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Neurology", updated.Profile.Specialization)
	assert.Equal(t, "LIC-1", updated.Profile.License)

	_, err = svc.UpdateUser(ctx, models.Caller{ID: pat.ID, Role: models.RolePatient}, doc.ID, update)
	assert.Equal(t, "Not authorized", messageOf(t, err))
	assert.Equal(t, 403, utils.StatusCode(err))
}

func TestGetMyDoctors(t *testing.T) {
	ctx := context.Background()
	svc, _, appts := newTestService()

	doc, err := svc.CreateUser(ctx, doctorRequest("doc@x.io"))
	require.NoError(t, err)

	none, err := svc.GetMyDoctors(ctx, "pat")
	require.NoError(t, err)
	assert.Empty(t, none)

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	for i, label := range []string{"09:00 AM", "10:00 AM"} {
		require.NoError(t, appts.Create(ctx, &models.Appointment{
			ID: string(rune('a' + i)), PatientID: "pat", DoctorID: doc.ID, Date: day, Time: label, Status: models.AppointmentPending,
		}))
	}

	doctors, err := svc.GetMyDoctors(ctx, "pat")
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, doc.ID, doctors[0].ID)

	all, err := svc.GetDoctors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
