package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"ehealth/database/repository/memory"
	"ehealth/models"
	"ehealth/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobs struct {
	uploads []string
	deleted []string
	err     error
}

func (f *fakeBlobs) Upload(_ context.Context, file io.Reader, folder string) (*models.UploadedFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(file)
	f.uploads = append(f.uploads, folder+"/"+string(b))
	return &models.UploadedFile{URL: "https://cdn.example/" + folder + "/r1.pdf", PublicID: folder + "/r1"}, nil
}

func (f *fakeBlobs) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

type failingReports struct{}

func (failingReports) Create(context.Context, *models.Report) error { return errors.New("insert failed") }
func (failingReports) ListByPatient(context.Context, string) ([]models.Report, error) {
	return nil, errors.New("query failed")
}

var (
	pat = models.Caller{ID: "pat", Role: models.RolePatient}
	doc = models.Caller{ID: "doc", Role: models.RoleDoctor}
)

func TestUploadAsPatient(t *testing.T) {
	blobs := &fakeBlobs{}
	svc := NewReportService(blobs, memory.NewReportRepo())

	report, err := svc.Upload(context.Background(), pat, UploadReportInput{
		PatientID: "someone-else",
		FileName:  "xray.pdf",
		FileType:  "application/pdf",
		Content:   strings.NewReader("pdf-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pat", report.PatientID)
	assert.Equal(t, models.DefaultReportDescription, report.Description)
	assert.Equal(t, []string{"medical-reports/pdf-bytes"}, blobs.uploads)
	assert.Equal(t, "medical-reports/r1", report.PublicID)
}

func TestUploadAsDoctorNeedsPatient(t *testing.T) {
	svc := NewReportService(&fakeBlobs{}, memory.NewReportRepo())
	ctx := context.Background()

	_, err := svc.Upload(ctx, doc, UploadReportInput{Content: strings.NewReader("x")})
	assert.Equal(t, 400, utils.StatusCode(err))

	_, err = svc.Upload(ctx, doc, UploadReportInput{Content: nil, PatientID: "pat"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No file uploaded")

	report, err := svc.Upload(ctx, doc, UploadReportInput{PatientID: "pat", Description: "Blood panel", Content: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "doc", report.UploadedBy)
	assert.Equal(t, "Blood panel", report.Description)
}

func TestUploadRemovesFileWhenRecordFails(t *testing.T) {
	blobs := &fakeBlobs{}
	svc := NewReportService(blobs, failingReports{})

	_, err := svc.Upload(context.Background(), pat, UploadReportInput{Content: strings.NewReader("x")})
	assert.Equal(t, 500, utils.StatusCode(err))
	assert.Equal(t, []string{"medical-reports/r1"}, blobs.deleted)
}

func TestUploadBlobFailure(t *testing.T) {
	svc := NewReportService(&fakeBlobs{err: errors.New("cloud down")}, memory.NewReportRepo())

	_, err := svc.Upload(context.Background(), pat, UploadReportInput{Content: strings.NewReader("x")})
	assert.True(t, utils.IsKind(err, utils.KindUpstream))
}

func TestListForPatient(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(&fakeBlobs{}, memory.NewReportRepo())
	_, err := svc.Upload(ctx, pat, UploadReportInput{Content: strings.NewReader("x")})
	require.NoError(t, err)

	list, err := svc.ListForPatient(ctx, pat, "pat")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.ListForPatient(ctx, doc, "pat")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListForPatient(ctx, models.Caller{ID: "pat2", Role: models.RolePatient}, "pat")
	assert.Equal(t, 403, utils.StatusCode(err))
}
