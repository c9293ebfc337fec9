package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Station is a stop on the line. The declaration order is the total order used
// to canonicalise ride sections.
type Station int

const (
	Tokyo Station = iota
	ShinOsaka
	Himeji
)

var stationSlugs = map[Station]string{
	Tokyo:     "tokyo",
	ShinOsaka: "shin-osaka",
	Himeji:    "himeji",
}

var stationAliases = map[string]Station{
	"tokyo":      Tokyo,
	"shin-osaka": ShinOsaka,
	"shinosaka":  ShinOsaka,
	"himeji":     Himeji,
}

// Stations returns every station in line order.
func Stations() []Station {
	return []Station{Tokyo, ShinOsaka, Himeji}
}

// ParseStation resolves a station slug (case-insensitive).
func ParseStation(s string) (Station, error) {
	st, ok := stationAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStation, s)
	}
	return st, nil
}

func (s Station) String() string {
	if slug, ok := stationSlugs[s]; ok {
		return slug
	}
	return fmt.Sprintf("station(%d)", int(s))
}

func (s Station) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Station) UnmarshalText(b []byte) error {
	st, err := ParseStation(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// StationPair is a direction-independent pair with From <= To.
type StationPair struct {
	From Station `json:"from"`
	To   Station `json:"to"`
}

// RideSection is the travelled segment in the direction of travel.
type RideSection struct {
	Departure Station `json:"departure"`
	Arrival   Station `json:"arrival"`
}

// StationPair returns the canonical pair so that lookups ignore direction.
func (r RideSection) StationPair() StationPair {
	if r.Arrival < r.Departure {
		return StationPair{From: r.Arrival, To: r.Departure}
	}
	return StationPair{From: r.Departure, To: r.Arrival}
}

var operatingKilometers = map[StationPair]float64{
	{From: Tokyo, To: ShinOsaka}: 553.0,
	{From: Tokyo, To: Himeji}:    644.0,
}

// OperatingKilometer returns the route distance used for discount eligibility.
func (r RideSection) OperatingKilometer() (float64, error) {
	km, ok := operatingKilometers[r.StationPair()]
	if !ok {
		return 0, fmt.Errorf("%w: %s-%s", ErrUnknownRoute, r.Departure, r.Arrival)
	}
	return km, nil
}

// KnownPairs lists the priced routes in station order.
func KnownPairs() []StationPair {
	pairs := make([]StationPair, 0, len(operatingKilometers))
	for p := range operatingKilometers {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].From != pairs[j].From {
			return pairs[i].From < pairs[j].From
		}
		return pairs[i].To < pairs[j].To
	})
	return pairs
}
