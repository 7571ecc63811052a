package models

import "time"

const DefaultReportDescription = "Medical Report"

// Report is an uploaded medical document stored in the blob store.
type Report struct {
	ID          string    `bson:"id" json:"id"`
	PatientID   string    `bson:"patient" json:"patient"`
	UploadedBy  string    `bson:"uploadedBy" json:"uploadedBy"`
	FileURL     string    `bson:"fileUrl" json:"fileUrl"`
	PublicID    string    `bson:"publicId" json:"publicId"`
	FileName    string    `bson:"fileName" json:"fileName"`
	FileType    string    `bson:"fileType" json:"fileType"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// UploadedFile is the blob store's answer to an upload.
type UploadedFile struct {
	URL      string
	PublicID string
}
