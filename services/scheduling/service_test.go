package scheduling

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

type failingFinder struct{}

func (failingFinder) FindByDoctorAndDate(context.Context, string, time.Time) ([]models.Appointment, error) {
	return nil, errors.New("timeout")
}

func newTestService(t *testing.T) (*Service, *memory.AppointmentRepo) {
	t.Helper()
	users := seedUsers(t)
	appts := memory.NewAppointmentRepo(false)
	store := &DoctorAvailabilityStore{Directory: users}
	svc := NewService(store, appts)
	svc.Validator.Now = fixedNow

	windows := []models.AvailabilityWindow{window("Monday", "09:00", "11:00")}
	_, err := store.Set(context.Background(), "doc", windows)
	require.NoError(t, err, "seed availability")
	return svc, appts
}

func TestSlotsForDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	got, err := svc.SlotsForDate(ctx, "doc", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, got)

	_, err = svc.SlotsForDate(ctx, "doc", "2024-05-27")
	assert.True(t, utils.IsKind(err, utils.KindValidation), "past date should be rejected, got %v", err)

	_, err = svc.SlotsForDate(ctx, "doc", "tomorrow")
	assert.True(t, utils.IsKind(err, utils.KindValidation), "invalid date should be rejected, got %v", err)

	_, err = svc.SlotsForDate(ctx, "nobody", "2024-06-10")
	assert.True(t, utils.IsKind(err, utils.KindNotFound), "unknown doctor should be not found, got %v", err)
}

func TestCheckBooking(t *testing.T) {
	ctx := context.Background()
	svc, appts := newTestService(t)
	monday := date(2024, 6, 10)

	label, err := svc.CheckBooking(ctx, "doc", monday, "9:00 AM")
	require.NoError(t, err)
	assert.Equal(t, "09:00 AM", label, "canonical label")

	require.NoError(t, appts.Create(ctx, &models.Appointment{ID: "a1", DoctorID: "doc", PatientID: "pat", Date: monday, Time: label, Status: models.AppointmentPending}))

	_, err = svc.CheckBooking(ctx, "doc", monday, "09:00 AM")
	assert.Equal(t, ReasonSlotTaken, reasonOf(t, err))

	_, err = svc.CheckBooking(ctx, "doc", monday, "10:00 AM")
	assert.NoError(t, err, "the next slot should be free")
}

func TestCheckBookingUpstreamFailure(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Appointments = failingFinder{}

	_, err := svc.CheckBooking(context.Background(), "doc", date(2024, 6, 10), "09:00 AM")
	assert.True(t, utils.IsKind(err, utils.KindUpstream), "expected upstream error, got %v", err)
}

func TestCheckBookingSkipsQueryWhenScheduleFails(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Appointments = failingFinder{}

	_, err := svc.CheckBooking(context.Background(), "doc", date(2024, 6, 11), "09:00 AM")
	assert.Equal(t, "Doctor is not available on Tuesday", reasonOf(t, err), "weekday rejection comes before any appointment query")
}
