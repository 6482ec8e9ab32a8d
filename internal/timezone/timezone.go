package timezone

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultTimezone = "Local"
	DayLayout       = "2006-01-02"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to the host zone.
func Location(tz string) *time.Location {
	if tz == "" || strings.EqualFold(tz, DefaultTimezone) {
		return time.Local
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	return time.Local
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Range is a half-open [Start, End) window.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// DayRange returns local midnight to the next local midnight for the calendar
// day of t. AddDate keeps DST days at their real length.
func DayRange(t time.Time, loc *time.Location) Range {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

func MonthRange(year int, month time.Month, loc *time.Location) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Range{Start: start, End: start.AddDate(0, 1, 0)}
}

// LastDays covers today plus the n-1 previous days.
func LastDays(now time.Time, n int, loc *time.Location) Range {
	today := DayRange(now, loc)
	return Range{Start: today.Start.AddDate(0, 0, -(n - 1)), End: today.End}
}

// DayKey formats t as the local calendar day used for grouping.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), loc)
}

// ParseDateTime accepts RFC3339 or "YYYY-MM-DD HH:MM" in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", s)
}
