package domain

import "errors"

// Pricing errors. Callers match them with errors.Is.
var (
	// ErrUnknownRoute is returned when a station pair has no entry in the fare tables.
	ErrUnknownRoute = errors.New("unknown route")

	// ErrInvalidPassengerCount is returned when a free-rider allowance is larger
	// than the adult count, or when the composer is handed a negative count.
	ErrInvalidPassengerCount = errors.New("invalid passenger count")

	// ErrNegativeAmount is returned when a Money subtraction would go below zero.
	ErrNegativeAmount = errors.New("negative amount")
)

// Input errors: caller values that cannot form a fare request.
var (
	ErrUnknownStation     = errors.New("unknown station")
	ErrUnknownTrain       = errors.New("unknown train")
	ErrUnknownSeatType    = errors.New("unknown seat type")
	ErrUnknownReserveType = errors.New("unknown reserve type")
	ErrInvalidDate        = errors.New("invalid departure date")
	ErrSameStation        = errors.New("departure and arrival must differ")

	ErrPassengerCountOutOfRange = errors.New("passenger count out of range")
)
