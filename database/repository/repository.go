package repository

import (
	appointmentRepo "ehealth/database/repository/appointment"
	"ehealth/database/repository/memory"
	messageRepo "ehealth/database/repository/message"
	recordsRepo "ehealth/database/repository/records"
	reportRepo "ehealth/database/repository/report"
	userRepo "ehealth/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces.
type (
	UserRepository          = userRepo.UserRepository
	AppointmentRepository   = appointmentRepo.AppointmentRepository
	MessageRepository       = messageRepo.MessageRepository
	MedicalRecordRepository = recordsRepo.MedicalRecordRepository
	ReportRepository        = reportRepo.ReportRepository
)

// Repositories bundles every store the services depend on.
type Repositories struct {
	Users        UserRepository
	Appointments AppointmentRepository
	Messages     MessageRepository
	Records      MedicalRecordRepository
	Reports      ReportRepository
}

// NewMongoRepositories wires every repository to the given database.
func NewMongoRepositories(db *mongo.Database, uniqueActiveSlots bool) *Repositories {
	return &Repositories{
		Users:        userRepo.NewMongoUserRepo(db),
		Appointments: appointmentRepo.NewMongoAppointmentRepo(db, uniqueActiveSlots),
		Messages:     messageRepo.NewMongoMessageRepo(db),
		Records:      recordsRepo.NewMongoRecordRepo(db),
		Reports:      reportRepo.NewMongoReportRepo(db),
	}
}

// NewMemoryRepositories wires the in-process stores.
func NewMemoryRepositories(uniqueActiveSlots bool) *Repositories {
	return &Repositories{
		Users:        memory.NewUserRepo(),
		Appointments: memory.NewAppointmentRepo(uniqueActiveSlots),
		Messages:     memory.NewMessageRepo(),
		Records:      memory.NewRecordRepo(),
		Reports:      memory.NewReportRepo(),
	}
}
