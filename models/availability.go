package models

// TimeRange is a bookable range inside one weekday, "HH:MM" 24-hour strings.
type TimeRange struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// AvailabilityWindow is a doctor's recurring availability for one weekday.
type AvailabilityWindow struct {
	Day   string      `bson:"day" json:"day"`
	Slots []TimeRange `bson:"slots" json:"slots"`
}

// UpdateAvailabilityRequest is the body of PUT /availability.
type UpdateAvailabilityRequest struct {
	Availability []AvailabilityWindow `json:"availability"`
}
