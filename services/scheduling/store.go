package scheduling

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ehealth/models"
	"ehealth/utils"

	"go.uber.org/zap"
)

const ReasonDoctorNotFound = "Doctor not found"

// AvailabilityStore holds each doctor's weekly windows.
type AvailabilityStore interface {
	Get(ctx context.Context, doctorID string) ([]models.AvailabilityWindow, error)
	// Set replaces the whole collection and returns what was stored.
	Set(ctx context.Context, doctorID string, windows []models.AvailabilityWindow) ([]models.AvailabilityWindow, error)
}

// DoctorDirectory is the slice of the user repository the store needs.
type DoctorDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetAvailability(ctx context.Context, id string, windows []models.AvailabilityWindow) error
}

// DoctorAvailabilityStore keeps windows embedded on the doctor's user document.
type DoctorAvailabilityStore struct {
	Directory DoctorDirectory
	// Cache is optional.
	Cache AvailabilityCache
	// Strict rejects unparseable, inverted and overlapping ranges.
	Strict bool
}

func (s *DoctorAvailabilityStore) loadDoctor(ctx context.Context, doctorID string) (*models.User, error) {
	doctor, err := s.Directory.GetByID(ctx, doctorID)
	if err != nil {
		return nil, utils.NewUpstreamError("Failed to load doctor", err)
	}
	if doctor == nil || doctor.Role != models.RoleDoctor {
		return nil, utils.NewNotFoundError(ReasonDoctorNotFound)
	}
	return doctor, nil
}

// Get returns the doctor's windows, empty when none were ever set.
func (s *DoctorAvailabilityStore) Get(ctx context.Context, doctorID string) ([]models.AvailabilityWindow, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		windows, ok, err := s.Cache.Get(ctx, doctorID)
		if err != nil {
			logger.Warn("availability cache read failed", zap.String("doctorID", doctorID), zap.Error(err))
		} else if ok {
			return windows, nil
		}
	}

	doctor, err := s.loadDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	windows := doctor.Availability
	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, doctorID, windows); err != nil {
			logger.Warn("availability cache write failed", zap.String("doctorID", doctorID), zap.Error(err))
		}
	}
	return windows, nil
}

// Set overwrites the doctor's windows wholesale.
func (s *DoctorAvailabilityStore) Set(ctx context.Context, doctorID string, windows []models.AvailabilityWindow) ([]models.AvailabilityWindow, error) {
	if _, err := s.loadDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	normalized, err := NormalizeWindows(windows, s.Strict)
	if err != nil {
		return nil, err
	}
	if err := s.Directory.SetAvailability(ctx, doctorID, normalized); err != nil {
		return nil, utils.NewUpstreamError("Failed to update availability", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, doctorID); err != nil {
			utils.GetLogger().Warn("availability cache invalidation failed", zap.String("doctorID", doctorID), zap.Error(err))
		}
	}
	return normalized, nil
}

// CanonicalDay maps a weekday name in any letter case to its English form.
func CanonicalDay(day string) (string, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(day), d.String()) {
			return d.String(), true
		}
	}
	return "", false
}

// NormalizeWindows checks day names and collapses repeated days so the last
// submitted window wins, keeping the position of the first. In strict mode
// every range must parse, start before it ends and not overlap its neighbours.
func NormalizeWindows(windows []models.AvailabilityWindow, strict bool) ([]models.AvailabilityWindow, error) {
	out := make([]models.AvailabilityWindow, 0, len(windows))
	position := map[string]int{}

	for _, w := range windows {
		day, ok := CanonicalDay(w.Day)
		if !ok {
			return nil, utils.NewValidationError(fmt.Sprintf("Invalid day: %s", w.Day))
		}
		slots := append([]models.TimeRange{}, w.Slots...)
		if strict {
			if err := validateRanges(day, slots); err != nil {
				return nil, err
			}
		}

		window := models.AvailabilityWindow{Day: day, Slots: slots}
		if i, seen := position[day]; seen {
			out[i] = window
			continue
		}
		position[day] = len(out)
		out = append(out, window)
	}
	return out, nil
}

func validateRanges(day string, slots []models.TimeRange) error {
	type span struct{ start, end int }
	spans := make([]span, 0, len(slots))
	for _, r := range slots {
		start, end, ok := parseRange(r)
		if !ok {
			return utils.NewValidationError(fmt.Sprintf("Invalid time range %s-%s on %s", r.StartTime, r.EndTime, day))
		}
		if start >= end {
			return utils.NewValidationError(fmt.Sprintf("Start time must be before end time on %s", day))
		}
		spans = append(spans, span{start, end})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return utils.NewValidationError(fmt.Sprintf("Overlapping time ranges on %s", day))
		}
	}
	return nil
}
