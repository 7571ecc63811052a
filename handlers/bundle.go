package handlers

import (
	userRepoPkg "ehealth/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	User         *UserHandler
	Availability *AvailabilityHandler
	Appointment  *AppointmentHandler
	Message      *MessageHandler
	Record       *RecordHandler
	Report       *ReportHandler
	Admin        *AdminHandler
}
