package schedule

import (
	"errors"
	"time"
)

const (
	DateLayout = "2006-01-02"
	// LongLayout is the en-US long date used on project cards.
	LongLayout = "January 2, 2006"
	// ShortLayout is the en-US numeric date used on appointment cards.
	ShortLayout = "1/2/2006"
)

var ErrInvalidDate = errors.New("invalid date format")

func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// ParseLoose accepts either a plain date or an RFC 3339 timestamp, which is
// what the backend returns for dates it stored itself.
func ParseLoose(value string, loc *time.Location) (time.Time, error) {
	if t, err := ParseDate(value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.In(loc), nil
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

func IsToday(dateStr string, loc *time.Location, now time.Time) (bool, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return false, err
	}
	return SameDay(date, now, loc), nil
}

func FormatLong(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(LongLayout)
}

// FormatShort renders a raw backend date for display. Values that do not
// parse are returned unchanged.
func FormatShort(value string, loc *time.Location) string {
	t, err := ParseLoose(value, loc)
	if err != nil {
		return value
	}
	return t.Format(ShortLayout)
}
