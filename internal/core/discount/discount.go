// Package discount decides which discounts a booking qualifies for.
package discount

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/samirrijal/railfare/internal/core/domain"
)

// Eligibility thresholds.
const (
	RoundTripMinKm    = 601.0
	SmallGroupMin     = 8
	SmallGroupMax     = 30
	LargeGroupMin     = 31
	FreeRiderPerGroup = 50
)

var (
	roundTripRate      = decimal.RequireFromString("0.9")
	smallGroupPeakRate = decimal.RequireFromString("0.9")
	smallGroupRate     = decimal.RequireFromString("0.85")
)

// IndividualDiscount transforms one passenger's fare pair.
type IndividualDiscount interface {
	Apply(domain.FarePair) domain.FarePair
	Name() string
}

// OverallDiscount removes whole passengers from the bill.
type OverallDiscount interface {
	BillableAdults(adults int) (int, error)
	Name() string
}

// RoundTripDiscount takes 10% off the train fare. The express fare is untouched.
type RoundTripDiscount struct{}

func (RoundTripDiscount) Apply(p domain.FarePair) domain.FarePair {
	return domain.FarePair{
		Train:   domain.TrainFare{Value: p.Train.Value.Scale(roundTripRate)},
		Express: p.Express,
	}
}

func (RoundTripDiscount) Name() string { return "round_trip" }

// GroupDiscountUnder30 scales both components by Rate.
type GroupDiscountUnder30 struct {
	Rate decimal.Decimal
}

func (g GroupDiscountUnder30) Apply(p domain.FarePair) domain.FarePair {
	return domain.FarePair{
		Train:   domain.TrainFare{Value: p.Train.Value.Scale(g.Rate)},
		Express: domain.ExpressFare{Value: p.Express.Value.Scale(g.Rate)},
	}
}

func (GroupDiscountUnder30) Name() string { return "group_under_30" }

// GroupDiscountMore31 lets FreeCount adults ride free.
type GroupDiscountMore31 struct {
	FreeCount int
}

func (g GroupDiscountMore31) BillableAdults(adults int) (int, error) {
	n := adults - g.FreeCount
	if n < 0 {
		return 0, fmt.Errorf("%w: %d adults, %d free", domain.ErrInvalidPassengerCount, adults, g.FreeCount)
	}
	return n, nil
}

func (GroupDiscountMore31) Name() string { return "group_31_plus" }

// ResolveIndividual returns the per-passenger discounts in the order they must
// be applied: round trip first, then small group.
func ResolveIndividual(section domain.RideSection, pax domain.NumberOfPassengers, season domain.Season) ([]IndividualDiscount, error) {
	km, err := section.OperatingKilometer()
	if err != nil {
		return nil, err
	}

	var ds []IndividualDiscount
	if km >= RoundTripMinKm {
		ds = append(ds, RoundTripDiscount{})
	}

	total := pax.Total()
	if total >= SmallGroupMin && total <= SmallGroupMax {
		rate := smallGroupRate
		if season == domain.Peak {
			rate = smallGroupPeakRate
		}
		ds = append(ds, GroupDiscountUnder30{Rate: rate})
	}
	return ds, nil
}

// ResolveOverall returns the large-group discount, or nil when the party is too small.
func ResolveOverall(pax domain.NumberOfPassengers) OverallDiscount {
	total := pax.Total()
	if total < LargeGroupMin {
		return nil
	}
	return GroupDiscountMore31{FreeCount: max(total/FreeRiderPerGroup, 1)}
}
