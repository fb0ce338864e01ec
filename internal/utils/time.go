package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/pkm/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// StartOfDay returns midnight (00:00:00.000000) of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last microsecond (23:59:59.999999) of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(constants.DayEndOffset)
}

// DaysBetween returns the number of calendar days from a to b, ignoring the time
// of day. DST transitions do not affect the result.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(db.Sub(da).Hours() / 24))
}

// ParseDate parses a date string (YYYY-MM-DD) at midnight in the local timezone.
func ParseDate(dateStr string) (time.Time, error) {
	return ParseDateInLocation(dateStr, time.Local)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// FormatTimestamp renders t in the storage timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimestampFormat)
}

// ParseTimestamp parses a storage timestamp in the given location. RFC 3339
// values are accepted as well.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(constants.TimestampFormat, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// HoursDuration converts fractional hours into a duration in whole seconds,
// which is exact for hours with one decimal place.
func HoursDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*3600)) * time.Second
}
