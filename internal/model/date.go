package model

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidDate is returned when a date or competence string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

const isoLayout = "2006-01-02"

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalizing out-of-range values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseBRDate parses a day/month/year date such as "31/12/2015".
// Impossible dates like 31/02/2015 are rejected instead of normalized.
func ParseBRDate(s string) (Date, error) {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// ParseISODate parses a YYYY-MM-DD date.
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// LastDayOfMonth returns the last calendar day of the given month.
func LastDayOfMonth(year int, month time.Month) Date {
	return NewDate(year, month+1, 0)
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	return d.Time().After(o.Time())
}

// DaysUntil returns the number of whole days from d to o (negative when o is earlier).
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

// String returns the ISO form YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(isoLayout)
}

// BRString returns the dd/mm/yyyy form used in the registry documents.
func (d Date) BRString() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("02/01/2006")
}

// MarshalJSON encodes the date as an ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON decodes an ISO date string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, b)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseISODate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Competence is the month/year a contribution salary refers to.
type Competence struct {
	Year  int
	Month time.Month
}

// ParseCompetence parses a month/year string such as "03/2010".
func ParseCompetence(s string) (Competence, error) {
	t, err := time.Parse("01/2006", s)
	if err != nil {
		return Competence{}, fmt.Errorf("%w: competence %q", ErrInvalidDate, s)
	}
	return Competence{Year: t.Year(), Month: t.Month()}, nil
}

// Before reports whether c is earlier than o.
func (c Competence) Before(o Competence) bool {
	if c.Year != o.Year {
		return c.Year < o.Year
	}
	return c.Month < o.Month
}

// LastDay returns the last calendar day of the competence month.
func (c Competence) LastDay() Date {
	return LastDayOfMonth(c.Year, c.Month)
}

// String returns the MM/YYYY form.
func (c Competence) String() string {
	return fmt.Sprintf("%02d/%04d", int(c.Month), c.Year)
}

// MarshalJSON encodes the competence as MM/YYYY.
func (c Competence) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON decodes a MM/YYYY string.
func (c *Competence) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, b)
	}
	parsed, err := ParseCompetence(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
