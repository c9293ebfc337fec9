package domain

import "time"

// FareBreakdown shows how a total was reached.
type FareBreakdown struct {
	AdultFare           FarePair `json:"adult_fare"`            // one-way, before discounts
	ChildFare           FarePair `json:"child_fare"`            // one-way, before discounts
	DiscountedAdultFare FarePair `json:"discounted_adult_fare"` // after individual discounts
	DiscountedChildFare FarePair `json:"discounted_child_fare"`
	BillableAdults      int      `json:"billable_adults"`
	FreeAdults          int      `json:"free_adults"`
	Children            int      `json:"children"`
	AdultsTotal         FarePair `json:"adults_total"`
	ChildrenTotal       FarePair `json:"children_total"`
	Multiplier          int      `json:"multiplier"`
	Discounts           []string `json:"discounts"`
	Total               Money    `json:"total"`
}

// FareQuote is the priced answer to a fare request.
type FareQuote struct {
	Section     RideSection        `json:"section"`
	Train       Train              `json:"train"`
	SeatType    SeatType           `json:"seat_type"`
	ReserveType ReserveType        `json:"reserve_type"`
	Date        DepartureDate      `json:"date"`
	Season      Season             `json:"season"`
	Passengers  NumberOfPassengers `json:"passengers"`
	DistanceKm  float64            `json:"distance_km"`
	Breakdown   FareBreakdown      `json:"breakdown"`
	Total       Money              `json:"total"`
	QuotedAt    time.Time          `json:"quoted_at"`
}

// RouteInfo describes one priced station pair.
type RouteInfo struct {
	From       Station `json:"from"`
	To         Station `json:"to"`
	DistanceKm float64 `json:"distance_km"`
}
