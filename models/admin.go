package models

// ChartPoint is one labelled value in a dashboard chart.
type ChartPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DateCount counts appointments on one calendar day.
type DateCount struct {
	Name         string `json:"name"`
	Appointments int    `json:"appointments"`
}

type AdminStats struct {
	TotalUsers           int64        `json:"totalUsers"`
	ActiveUsers          int64        `json:"activeUsers"`
	Doctors              int64        `json:"doctors"`
	Patients             int64        `json:"patients"`
	Appointments         int64        `json:"appointments"`
	PendingAppointments  int64        `json:"pendingAppointments"`
	RecentUsers          []User       `json:"recentUsers"`
	UsersByRole          []ChartPoint `json:"usersByRole"`
	AppointmentsByStatus []ChartPoint `json:"appointmentsByStatus"`
}

type AppointmentReportStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

type AppointmentReportCharts struct {
	StatusData []ChartPoint `json:"statusData"`
	DateData   []DateCount  `json:"dateData"`
}

type AppointmentReport struct {
	Appointments []AppointmentDetail     `json:"appointments"`
	Stats        AppointmentReportStats  `json:"stats"`
	ChartData    AppointmentReportCharts `json:"chartData"`
}
