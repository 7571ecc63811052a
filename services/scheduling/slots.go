package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ehealth/models"
	"ehealth/utils"
)

const (
	slotLength  = time.Hour
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

const (
	ReasonInvalidTimeFormat = "Invalid time format"
	ReasonInvalidDate       = "Invalid date format"
)

// WindowFor returns the first window declared for date's weekday.
func WindowFor(windows []models.AvailabilityWindow, date time.Time) (models.AvailabilityWindow, bool) {
	day := date.Weekday().String()
	for _, w := range windows {
		if w.Day == day {
			return w, true
		}
	}
	return models.AvailabilityWindow{}, false
}

// ResolveSlots lists the bookable one-hour labels for date, in declaration order.
// Each range yields a label while a full hour still fits before its end; ranges
// with unparseable bounds yield nothing. Overlapping ranges are not deduplicated.
func ResolveSlots(windows []models.AvailabilityWindow, date time.Time) []string {
	labels := []string{}
	window, ok := WindowFor(windows, date)
	if !ok {
		return labels
	}
	step := int(slotLength / time.Minute)
	for _, r := range window.Slots {
		start, end, ok := parseRange(r)
		if !ok {
			continue
		}
		for t := start; t+step <= end; t += step {
			labels = append(labels, FormatLabel(t))
		}
	}
	return labels
}

// FormatLabel renders minutes after midnight as "hh:MM AM|PM".
func FormatLabel(minutes int) string {
	h, m := minutes/60, minutes%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m, period)
}

// ParseLabel converts "h:MM AM|PM" to minutes after midnight.
// "12:MM AM" is 00:MM and "12:MM PM" is 12:MM.
func ParseLabel(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) != 2 || (fields[1] != "AM" && fields[1] != "PM") {
		return 0, utils.NewValidationError(ReasonInvalidTimeFormat)
	}
	hh, mm, found := strings.Cut(fields[0], ":")
	if !found || len(mm) != 2 || hh == "" || len(hh) > 2 {
		return 0, utils.NewValidationError(ReasonInvalidTimeFormat)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 12 {
		return 0, utils.NewValidationError(ReasonInvalidTimeFormat)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, utils.NewValidationError(ReasonInvalidTimeFormat)
	}

	if h == 12 {
		h = 0
	}
	if fields[1] == "PM" {
		h += 12
	}
	return h*60 + m, nil
}

// To24Hour converts a slot label to its "HH:MM" 24-hour form.
func To24Hour(label string) (string, error) {
	minutes, err := ParseLabel(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// CanonicalLabel normalizes a label such as "9:00 AM" to "09:00 AM".
func CanonicalLabel(label string) (string, error) {
	minutes, err := ParseLabel(label)
	if err != nil {
		return "", err
	}
	return FormatLabel(minutes), nil
}

// parseClock reads "HH:MM" as minutes after midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func parseRange(r models.TimeRange) (start, end int, ok bool) {
	start, okStart := parseClock(r.StartTime)
	end, okEnd := parseClock(r.EndTime)
	return start, end, okStart && okEnd
}

// ParseDate reads "YYYY-MM-DD" (or RFC 3339) as a local calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDay(t.In(time.Local)), nil
	}
	return time.Time{}, utils.NewValidationError(ReasonInvalidDate)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LocalDay returns the server-local calendar day t falls on. Dates decoded from
// the database arrive in UTC.
func LocalDay(t time.Time) time.Time {
	return StartOfDay(t.In(time.Local))
}

// isBeforeDay reports whether date's calendar day precedes now's, read in date's location.
func isBeforeDay(date, now time.Time) bool {
	return StartOfDay(date).Before(StartOfDay(now.In(date.Location())))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
