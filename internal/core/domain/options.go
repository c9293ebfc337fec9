package domain

import (
	"fmt"
	"strings"
)

// Train is the service class. Hikari is the standard express, Nozomi the premium one.
type Train int

const (
	Hikari Train = iota
	Nozomi
)

func (t Train) String() string {
	if t == Nozomi {
		return "nozomi"
	}
	return "hikari"
}

func (t Train) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Train) UnmarshalText(b []byte) error {
	v, err := ParseTrain(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTrain accepts the train name or its class ("standard", "premium").
func ParseTrain(s string) (Train, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hikari", "standard":
		return Hikari, nil
	case "nozomi", "premium":
		return Nozomi, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTrain, s)
}

// SeatType is reserved or unreserved seating.
type SeatType int

const (
	Reserved SeatType = iota
	Unreserved
)

func (s SeatType) String() string {
	if s == Unreserved {
		return "unreserved"
	}
	return "reserved"
}

func (s SeatType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SeatType) UnmarshalText(b []byte) error {
	v, err := ParseSeatType(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseSeatType(s string) (SeatType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reserved":
		return Reserved, nil
	case "unreserved", "free", "non-reserved":
		return Unreserved, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSeatType, s)
}

// ReserveType selects a one-way or a round-trip ticket.
type ReserveType int

const (
	OneWay ReserveType = iota
	RoundTrip
)

func (r ReserveType) String() string {
	if r == RoundTrip {
		return "round-trip"
	}
	return "one-way"
}

func (r ReserveType) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *ReserveType) UnmarshalText(b []byte) error {
	v, err := ParseReserveType(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Multiplier is the number of legs charged.
func (r ReserveType) Multiplier() int {
	if r == RoundTrip {
		return 2
	}
	return 1
}

func ParseReserveType(s string) (ReserveType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one-way", "oneway", "single", "single-trip":
		return OneWay, nil
	case "round-trip", "roundtrip", "round", "return":
		return RoundTrip, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownReserveType, s)
}

// NumberOfPassengers holds the head counts of a booking.
type NumberOfPassengers struct {
	Adult int `json:"adult"`
	Child int `json:"child"`
}

func (n NumberOfPassengers) Total() int {
	return n.Adult + n.Child
}
