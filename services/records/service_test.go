package records

import (
	"context"
	"testing"

	"ehealth/database/repository/memory"
	"ehealth/models"
	"ehealth/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	doc   = models.Caller{ID: "doc", Role: models.RoleDoctor}
	doc2  = models.Caller{ID: "doc2", Role: models.RoleDoctor}
	pat   = models.Caller{ID: "pat", Role: models.RolePatient}
	other = models.Caller{ID: "pat2", Role: models.RolePatient}
)

func newTestService(t *testing.T) *DefaultRecordService {
	t.Helper()
	users := memory.NewUserRepo()
	for _, u := range []models.User{
		{ID: "doc", Name: "Dr Who", Email: "doc@x.io", Role: models.RoleDoctor, Profile: models.Profile{Specialization: "GP"}},
		{ID: "doc2", Name: "Dr No", Email: "doc2@x.io", Role: models.RoleDoctor},
		{ID: "pat", Name: "Pat", Email: "pat@x.io", Role: models.RolePatient},
		{ID: "pat2", Name: "Sam", Email: "sam@x.io", Role: models.RolePatient},
	} {
		u := u
		require.NoError(t, users.Create(context.Background(), &u))
	}
	return NewRecordService(memory.NewRecordRepo(), users)
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, pat, models.CreateRecordRequest{Patient: "pat", Diagnosis: "flu"})
	assert.Equal(t, 403, utils.StatusCode(err))

	_, err = svc.Create(ctx, doc, models.CreateRecordRequest{Patient: "pat"})
	assert.Equal(t, 400, utils.StatusCode(err))

	_, err = svc.Create(ctx, doc, models.CreateRecordRequest{Patient: "doc2", Diagnosis: "flu"})
	assert.Equal(t, 404, utils.StatusCode(err))

	rec, err := svc.Create(ctx, doc, models.CreateRecordRequest{Patient: "pat", Diagnosis: "flu", Prescription: "rest"})
	require.NoError(t, err)
	assert.Equal(t, "doc", rec.DoctorID)

	list, err := svc.ListForPatient(ctx, pat, "pat")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "GP", list[0].Doctor.Specialization)

	list, err = svc.ListForPatient(ctx, doc2, "pat")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListForPatient(ctx, other, "pat")
	assert.Equal(t, 403, utils.StatusCode(err))
}

func TestUpdateOnlyByAuthor(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	rec, err := svc.Create(ctx, doc, models.CreateRecordRequest{Patient: "pat", Diagnosis: "flu", Notes: "fever"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, pat, rec.ID, models.UpdateRecordRequest{Diagnosis: "cold"})
	assert.Equal(t, 403, utils.StatusCode(err))

	_, err = svc.Update(ctx, doc2, rec.ID, models.UpdateRecordRequest{Diagnosis: "cold"})
	assert.Equal(t, 403, utils.StatusCode(err))

	_, err = svc.Update(ctx, doc, "missing", models.UpdateRecordRequest{Diagnosis: "cold"})
	assert.Equal(t, 404, utils.StatusCode(err))

	updated, err := svc.Update(ctx, doc, rec.ID, models.UpdateRecordRequest{Diagnosis: "cold"})
	require.NoError(t, err)
	assert.Equal(t, "cold", updated.Diagnosis)
	assert.Equal(t, "fever", updated.Notes, "empty fields leave the stored value untouched")
}
