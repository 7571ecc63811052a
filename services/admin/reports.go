package admin

import (
	"context"
	"sort"
	"time"

	"ehealth/models"
	"ehealth/services/scheduling"
	"ehealth/utils"
)

const dateKeyLayout = "2006-01-02"

// reportRange parses the query dates. The end date is inclusive of its whole day.
func (s *DefaultAdminService) reportRange(startDate, endDate string) (time.Time, time.Time, error) {
	now := s.Now()
	end := scheduling.StartOfDay(now)
	start := end.Add(-DefaultReportWindow)

	if startDate != "" {
		d, err := scheduling.ParseDate(startDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = scheduling.StartOfDay(d)
	}
	if endDate != "" {
		d, err := scheduling.ParseDate(endDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = scheduling.StartOfDay(d)
	}
	end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	if end.Before(start) {
		return time.Time{}, time.Time{}, utils.NewValidationError("startDate must not be after endDate")
	}
	return start, end, nil
}

func (s *DefaultAdminService) Report(ctx context.Context, reportType, startDate, endDate string) (interface{}, error) {
	if reportType != ReportAppointments && reportType != ReportUsers {
		return nil, utils.NewValidationError("Invalid report type")
	}
	start, end, err := s.reportRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if reportType == ReportUsers {
		return s.UserReport(ctx, start, end)
	}
	return s.AppointmentReport(ctx, start, end)
}

func (s *DefaultAdminService) AppointmentReport(ctx context.Context, start, end time.Time) (*models.AppointmentReport, error) {
	appts, err := s.Appointments.ListBetween(ctx, start, end)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to generate report", err)
	}
	details, err := s.Populator.Populate(ctx, appts)
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int{}
	byDay := map[string]int{}
	for _, a := range appts {
		byStatus[a.Status]++
		byDay[scheduling.LocalDay(a.Date).Format(dateKeyLayout)]++
	}

	dateData := make([]models.DateCount, 0, len(byDay))
	for day, n := range byDay {
		dateData = append(dateData, models.DateCount{Name: day, Appointments: n})
	}
	sort.Slice(dateData, func(i, j int) bool { return dateData[i].Name < dateData[j].Name })

	return &models.AppointmentReport{
		Appointments: details,
		Stats: models.AppointmentReportStats{
			Total:     len(appts),
			Completed: byStatus[models.AppointmentCompleted],
			Pending:   byStatus[models.AppointmentPending],
		},
		ChartData: models.AppointmentReportCharts{
			StatusData: []models.ChartPoint{
				{Name: "Completed", Value: int64(byStatus[models.AppointmentCompleted])},
				{Name: "Pending", Value: int64(byStatus[models.AppointmentPending])},
				{Name: "Approved", Value: int64(byStatus[models.AppointmentApproved])},
				{Name: "Rejected", Value: int64(byStatus[models.AppointmentRejected])},
			},
			DateData: dateData,
		},
	}, nil
}

// UserReport lists users created within the range.
func (s *DefaultAdminService) UserReport(ctx context.Context, start, end time.Time) ([]models.User, error) {
	users, err := s.Users.GetCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to generate report", err)
	}
	return users, nil
}
