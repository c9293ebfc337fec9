package domain

import (
	"fmt"
	"time"
)

// Season is the date-derived pricing regime.
type Season int

const (
	Regular Season = iota
	OffPeak
	Peak
)

func (s Season) String() string {
	switch s {
	case OffPeak:
		return "off_peak"
	case Peak:
		return "peak"
	default:
		return "regular"
	}
}

func (s Season) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Season) UnmarshalText(b []byte) error {
	switch string(b) {
	case "regular":
		*s = Regular
	case "off_peak":
		*s = OffPeak
	case "peak":
		*s = Peak
	default:
		return fmt.Errorf("unknown season %q", string(b))
	}
	return nil
}

const dateLayout = "2006-01-02"

// DepartureDate is a calendar date without time of day.
type DepartureDate struct {
	t time.Time
}

// NewDepartureDate builds a date, rejecting values time.Date would normalise
// (e.g. February 30th).
func NewDepartureDate(year, month, day int) (DepartureDate, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return DepartureDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return DepartureDate{t: t}, nil
}

// ParseDepartureDate parses a YYYY-MM-DD string.
func ParseDepartureDate(s string) (DepartureDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DepartureDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DepartureDate{t: t}, nil
}

func (d DepartureDate) String() string {
	return d.t.Format(dateLayout)
}

func (d DepartureDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DepartureDate) UnmarshalText(b []byte) error {
	parsed, err := ParseDepartureDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Season classifies the date by month and day only. Bounds are inclusive:
// Peak runs Dec 25 through Jan 10, OffPeak Jan 16 through Jan 30.
func (d DepartureDate) Season() Season {
	md := int(d.t.Month())*100 + d.t.Day()
	switch {
	case md >= 116 && md <= 130:
		return OffPeak
	case md >= 1225 || md <= 110:
		return Peak
	default:
		return Regular
	}
}
