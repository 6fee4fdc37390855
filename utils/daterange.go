package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of every calendar date in the API.
const DateLayout = "2006-01-02"

// MaxStayDays bounds the length of a priced or booked stay.
const MaxStayDays = 366

var (
	ErrEmptyRange  = errors.New("end date must be after start date")
	ErrStayTooLong = fmt.Errorf("a stay cannot exceed %d days", MaxStayDays)
)

// ParseDate parses a YYYY-MM-DD string into UTC midnight.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day.
func Today() time.Time {
	return Day(time.Now())
}

// DateRange is a half-open interval of calendar days: Start is included, End is not.
// A booking for [01-01, 01-05) occupies the nights of the 1st to the 4th and leaves
// the pitch free for an arrival on the 5th.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a non-empty range. end must be strictly after start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start, end = Day(start), Day(end)
	if !end.After(start) {
		return DateRange{}, ErrEmptyRange
	}
	return DateRange{Start: start, End: end}, nil
}

// ParseDateRange parses and validates a check-in/check-out pair.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	start, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("check-in: %w", err)
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("check-out: %w", err)
	}
	return NewDateRange(start, end)
}

// Overlaps reports whether the two ranges share at least one day.
// Ranges that only touch (one ends where the other starts) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	day = Day(day)
	return !day.Before(r.Start) && day.Before(r.End)
}

// Nights is the number of days between Start and End.
func (r DateRange) Nights() int {
	return DaysBetween(r.Start, r.End)
}

// Days lists every calendar day of the range, End excluded.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) String() string {
	return "[" + FormatDate(r.Start) + ", " + FormatDate(r.End) + ")"
}

// DaysBetween counts whole calendar days from a to b (negative when b is before a).
// It works on Unix seconds since time.Duration overflows past roughly 292 years.
func DaysBetween(a, b time.Time) int {
	return int((Day(b).Unix() - Day(a).Unix()) / 86400)
}

// CheckStayLength rejects stays longer than MaxStayDays.
func CheckStayLength(start, end time.Time) error {
	if DaysBetween(start, end) > MaxStayDays {
		return ErrStayTooLong
	}
	return nil
}
