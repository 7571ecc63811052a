// File: models/records.go
package models

import "time"

// MedicalRecord is a diagnosis entry written by a doctor for a patient.
type MedicalRecord struct {
	ID           string    `bson:"id" json:"id"`
	PatientID    string    `bson:"patient" json:"patient"`
	DoctorID     string    `bson:"doctor" json:"doctor"`
	Date         time.Time `bson:"date" json:"date"`
	Diagnosis    string    `bson:"diagnosis" json:"diagnosis"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Prescription string    `bson:"prescription,omitempty" json:"prescription,omitempty"`
	Appointment  string    `bson:"appointment,omitempty" json:"appointment,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MedicalRecordView is a record with the authoring doctor populated.
type MedicalRecordView struct {
	MedicalRecord
	Doctor *UserSummary `json:"doctor"`
}

type CreateRecordRequest struct {
	Patient      string `json:"patient"`
	Diagnosis    string `json:"diagnosis"`
	Notes        string `json:"notes"`
	Prescription string `json:"prescription"`
	Appointment  string `json:"appointment"`
}

type UpdateRecordRequest struct {
	Diagnosis    string `json:"diagnosis"`
	Notes        string `json:"notes"`
	Prescription string `json:"prescription"`
}
