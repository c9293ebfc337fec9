package telemetry

// Span attribute keys used for instrumentation.
const (
	// Request
	AttrFrom     = "fare.from"
	AttrTo       = "fare.to"
	AttrTrain    = "fare.train"
	AttrSeat     = "fare.seat"
	AttrTrip     = "fare.trip"
	AttrAdults   = "fare.adults"
	AttrChildren = "fare.children"

	// Result
	AttrSeason   = "fare.season"
	AttrTotal    = "fare.total"
	AttrCacheHit = "fare.cache_hit"
)
