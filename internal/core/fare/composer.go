// Package fare turns base fares, discounts and head counts into a total.
package fare

import (
	"fmt"

	"github.com/samirrijal/railfare/internal/core/discount"
	"github.com/samirrijal/railfare/internal/core/domain"
)

func applyAll(p domain.FarePair, ds []discount.IndividualDiscount) domain.FarePair {
	for _, d := range ds {
		p = d.Apply(p)
	}
	return p
}

// Compose prices a booking and returns the intermediate figures along with the total.
// overall may be nil. individual is applied in order to both the adult and the
// child fare.
func Compose(
	reserve domain.ReserveType,
	pax domain.NumberOfPassengers,
	base domain.SingleTripAdultFare,
	overall discount.OverallDiscount,
	individual []discount.IndividualDiscount,
) (domain.FareBreakdown, error) {
	if pax.Adult < 0 || pax.Child < 0 {
		return domain.FareBreakdown{}, fmt.Errorf("%w: %d adults, %d children",
			domain.ErrInvalidPassengerCount, pax.Adult, pax.Child)
	}

	adult := base.Adult()
	discountedAdult := applyAll(adult, individual)

	billable := pax.Adult
	if overall != nil {
		n, err := overall.BillableAdults(pax.Adult)
		if err != nil {
			return domain.FareBreakdown{}, err
		}
		billable = n
	}
	adultsTotal := discountedAdult.Times(billable)

	child := base.Child()
	discountedChild := applyAll(child, individual)
	childrenTotal := discountedChild.Times(pax.Child)

	sum := adultsTotal.Sum().Add(childrenTotal.Sum())
	multiplier := reserve.Multiplier()

	names := make([]string, 0, len(individual)+1)
	for _, d := range individual {
		names = append(names, d.Name())
	}
	if overall != nil {
		names = append(names, overall.Name())
	}

	return domain.FareBreakdown{
		AdultFare:           adult,
		ChildFare:           child,
		DiscountedAdultFare: discountedAdult,
		DiscountedChildFare: discountedChild,
		BillableAdults:      billable,
		FreeAdults:          pax.Adult - billable,
		Children:            pax.Child,
		AdultsTotal:         adultsTotal,
		ChildrenTotal:       childrenTotal,
		Multiplier:          multiplier,
		Discounts:           names,
		Total:               sum.Times(multiplier),
	}, nil
}

// CalcTotalFare is Compose without the breakdown.
func CalcTotalFare(
	reserve domain.ReserveType,
	pax domain.NumberOfPassengers,
	base domain.SingleTripAdultFare,
	overall discount.OverallDiscount,
	individual []discount.IndividualDiscount,
) (domain.Money, error) {
	b, err := Compose(reserve, pax, base, overall, individual)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}
