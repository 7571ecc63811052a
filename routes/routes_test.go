package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ehealth/database/repository"
	"ehealth/handlers"
	"ehealth/models"
	"ehealth/services/admin"
	"ehealth/services/appointment"
	"ehealth/services/message"
	"ehealth/services/records"
	"ehealth/services/scheduling"
	"ehealth/services/storage"
	"ehealth/services/tasks"
	"ehealth/services/user"
	"ehealth/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *gin.Engine
	repos  *repository.Repositories
	tokens map[string]string
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewMemoryRepositories(false)
	sched := scheduling.NewService(&scheduling.DoctorAvailabilityStore{Directory: repos.Users}, repos.Appointments)
	sched.Validator.Now = func() time.Time { return time.Date(2024, 6, 1, 15, 0, 0, 0, time.Local) }

	appts := appointment.NewAppointmentService(repos.Appointments, repos.Users, sched, &tasks.InboxNotifier{Inbox: repos.Messages})
	hb := &handlers.HandlerBundle{
		UserRepo:     repos.Users,
		User:         handlers.NewUserHandler(user.NewUserService(repos.Users, repos.Appointments)),
		Availability: handlers.NewAvailabilityHandler(sched),
		Appointment:  handlers.NewAppointmentHandler(appts),
		Message:      handlers.NewMessageHandler(message.NewMessageService(repos.Messages, repos.Users, repos.Appointments)),
		Record:       handlers.NewRecordHandler(records.NewRecordService(repos.Records, repos.Users)),
		Report:       handlers.NewReportHandler(storage.NewReportService(storage.DisabledStore{}, repos.Reports)),
		Admin:        handlers.NewAdminHandler(admin.NewAdminService(repos.Users, repos.Appointments, appts)),
	}

	r := gin.New()
	RegisterRoutes(r, hb)

	app := &testApp{router: r, repos: repos, tokens: map[string]string{}}
	app.seed(t, "doc", models.RoleDoctor)
	app.seed(t, "pat", models.RolePatient)
	app.seed(t, "adm", models.RoleAdmin)
	return app
}

func (a *testApp) seed(t *testing.T, id, role string) {
	t.Helper()
	token, err := utils.GenerateToken(id, role, utils.TokenTTL())
	require.NoError(t, err)
	require.NoError(t, a.repos.Users.Create(context.Background(), &models.User{
		ID: id, Name: id, Email: id + "@x.io", Role: role, Status: models.StatusActive, TokenHash: utils.HashToken(token),
	}))
	a.tokens[id] = token
}

func (a *testApp) do(method, path, as string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+a.tokens[as])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

var mondayMorning = models.UpdateAvailabilityRequest{Availability: []models.AvailabilityWindow{
	{Day: "Monday", Slots: []models.TimeRange{{StartTime: "09:00", EndTime: "11:00"}}},
}}

func TestHealthRoute(t *testing.T) {
	app := setupTestApp(t)
	w := app.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Name: "Ann", Email: "ann@x.io", Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	w = app.do(http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "ann@x.io", Password: "wrong!!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", errorOf(t, w))

	w = app.do(http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "ann@x.io", Password: "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMalformedBody(t *testing.T) {
	app := setupTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", errorOf(t, w))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupTestApp(t)
	w := app.do(http.MethodGet, "/api/users/my-doctors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodGet, "/api/users/doctors", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"doc"`)
}

func TestAvailabilityAndSlots(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(http.MethodPut, "/api/availability", "pat", mondayMorning)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized", errorOf(t, w))

	w = app.do(http.MethodPut, "/api/availability", "doc", mondayMorning)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Availability updated successfully")

	w = app.do(http.MethodGet, "/api/availability/doc/slots?date=2024-06-10", "pat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["09:00 AM","10:00 AM"]`, w.Body.String())

	w = app.do(http.MethodGet, "/api/availability/doc/slots", "pat", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, "/api/availability/nobody", "pat", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingFlow(t *testing.T) {
	app := setupTestApp(t)
	require.Equal(t, http.StatusOK, app.do(http.MethodPut, "/api/availability", "doc", mondayMorning).Code)

	req := models.BookAppointmentRequest{Doctor: "doc", Date: "2024-06-10", Time: "09:00 AM"}
	w := app.do(http.MethodPost, "/api/appointments", "pat", req)
	require.Equal(t, http.StatusCreated, w.Code)

	var appt models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))
	assert.Equal(t, models.AppointmentPending, appt.Status)

	w = app.do(http.MethodPost, "/api/appointments", "pat", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, scheduling.ReasonSlotTaken, errorOf(t, w))

	w = app.do(http.MethodPut, "/api/appointments/"+appt.ID+"/status", "doc", models.UpdateStatusRequest{Status: models.AppointmentApproved})
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/api/appointments/pat", "pat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details []models.AppointmentDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	require.Len(t, details, 1)
	assert.Equal(t, "doc", details[0].Doctor.ID)

	w = app.do(http.MethodGet, "/api/users/my-doctors", "pat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"doc"`)

	w = app.do(http.MethodGet, "/api/messages/conversations", "pat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "doc")
}

func TestMessagingRequiresAppointment(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(http.MethodPost, "/api/messages", "pat", models.SendMessageRequest{Recipient: "doc", Content: "hello"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPost, "/api/messages", "doc", models.SendMessageRequest{Recipient: "pat", Content: "hello"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPut, "/api/messages/read/doc", "pat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Messages marked as read")
}

func TestMedicalHistory(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(http.MethodPost, "/api/medical-history", "pat", models.CreateRecordRequest{Patient: "pat", Diagnosis: "flu"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPost, "/api/medical-history", "doc", models.CreateRecordRequest{Patient: "pat", Diagnosis: "flu"})
	require.Equal(t, http.StatusCreated, w.Code)
	var rec models.MedicalRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))

	w = app.do(http.MethodPut, "/api/medical-history/"+rec.ID, "doc", models.UpdateRecordRequest{Notes: "rest"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Medical record updated successfully")

	w = app.do(http.MethodGet, "/api/medical-history/pat", "pat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rest")
}

func TestReportUploadWithoutFile(t *testing.T) {
	app := setupTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("description", "x-ray"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/reports/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+app.tokens["pat"])
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", errorOf(t, w))
}

func TestAdminRoutes(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(http.MethodGet, "/api/admin/stats", "pat", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodGet, "/api/admin/stats", "adm", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/api/admin/reports/bogus", "adm", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid report type", errorOf(t, w))

	w = app.do(http.MethodPut, "/api/users/pat/status", "adm", models.UpdateUserStatusRequest{Status: models.StatusInactive})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User status updated successfully")

	w = app.do(http.MethodGet, "/api/users/my-doctors", "pat", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(http.MethodPut, "/api/users/doc", "pat", models.UpdateUserRequest{Name: "Mallory"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPut, "/api/users/pat", "pat", models.UpdateUserRequest{Name: "Pat"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Profile updated successfully")
	assert.Contains(t, w.Body.String(), `"name":"Pat"`)
}
