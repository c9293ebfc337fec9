// Package tariff holds the fixed base-fare tables.
package tariff

import (
	"fmt"

	"github.com/samirrijal/railfare/internal/core/domain"
)

var (
	tokyoShinOsaka = domain.StationPair{From: domain.Tokyo, To: domain.ShinOsaka}
	tokyoHimeji    = domain.StationPair{From: domain.Tokyo, To: domain.Himeji}
)

var trainFares = map[domain.StationPair]domain.Money{
	tokyoShinOsaka: 8910,
	tokyoHimeji:    10010,
}

// reserved seat on the standard train, regular season
var expressBase = map[domain.StationPair]domain.Money{
	tokyoShinOsaka: 5490,
	tokyoHimeji:    5920,
}

var nozomiAddition = map[domain.StationPair]domain.Money{
	tokyoShinOsaka: 320,
	tokyoHimeji:    530,
}

const (
	unreservedReduction domain.Money = 530
	seasonalAdjustment  domain.Money = 200
)

func lookup(table map[domain.StationPair]domain.Money, section domain.RideSection) (domain.Money, error) {
	v, ok := table[section.StationPair()]
	if !ok {
		return 0, fmt.Errorf("%w: %s-%s", domain.ErrUnknownRoute, section.Departure, section.Arrival)
	}
	return v, nil
}

// TrainFareFor returns the base ride fare for the section, independent of direction.
func TrainFareFor(section domain.RideSection) (domain.TrainFare, error) {
	v, err := lookup(trainFares, section)
	if err != nil {
		return domain.TrainFare{}, err
	}
	return domain.TrainFare{Value: v}, nil
}

// ExpressFareFor returns the limited-express surcharge. Seasonal adjustment applies
// to reserved seats only.
func ExpressFareFor(train domain.Train, seat domain.SeatType, section domain.RideSection, date domain.DepartureDate) (domain.ExpressFare, error) {
	fare, err := lookup(expressBase, section)
	if err != nil {
		return domain.ExpressFare{}, err
	}

	if seat == domain.Unreserved {
		fare, err = fare.Sub(unreservedReduction)
		if err != nil {
			return domain.ExpressFare{}, err
		}
		return domain.ExpressFare{Value: fare}, nil
	}

	if train == domain.Nozomi {
		add, err := lookup(nozomiAddition, section)
		if err != nil {
			return domain.ExpressFare{}, err
		}
		fare = fare.Add(add)
	}

	switch date.Season() {
	case domain.OffPeak:
		fare, err = fare.Sub(seasonalAdjustment)
		if err != nil {
			return domain.ExpressFare{}, err
		}
	case domain.Peak:
		fare = fare.Add(seasonalAdjustment)
	}

	return domain.ExpressFare{Value: fare}, nil
}

// SingleTripAdultFareFor composes the train and express fares for one adult, one way.
func SingleTripAdultFareFor(section domain.RideSection, train domain.Train, seat domain.SeatType, date domain.DepartureDate) (domain.SingleTripAdultFare, error) {
	tf, err := TrainFareFor(section)
	if err != nil {
		return domain.SingleTripAdultFare{}, err
	}
	ef, err := ExpressFareFor(train, seat, section, date)
	if err != nil {
		return domain.SingleTripAdultFare{}, err
	}
	return domain.SingleTripAdultFare{Train: tf, Express: ef}, nil
}
