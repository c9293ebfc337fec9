package domain

import "github.com/shopspring/decimal"

var childRate = decimal.RequireFromString("0.5")

// TrainFare is the base ride fare.
type TrainFare struct {
	Value Money `json:"value"`
}

// ExpressFare is the limited-express surcharge.
type ExpressFare struct {
	Value Money `json:"value"`
}

// FarePair is the (train, express) pair for one passenger on one leg.
type FarePair struct {
	Train   TrainFare   `json:"train_fare"`
	Express ExpressFare `json:"express_fare"`
}

// Sum returns train + express.
func (p FarePair) Sum() Money {
	return p.Train.Value.Add(p.Express.Value)
}

// Times multiplies both components by n.
func (p FarePair) Times(n int) FarePair {
	return FarePair{
		Train:   TrainFare{Value: p.Train.Value.Times(n)},
		Express: ExpressFare{Value: p.Express.Value.Times(n)},
	}
}

// SingleTripAdultFare is the undiscounted one-way adult fare.
type SingleTripAdultFare struct {
	Train   TrainFare
	Express ExpressFare
}

// Adult returns the fare pair as is.
func (f SingleTripAdultFare) Adult() FarePair {
	return FarePair{Train: f.Train, Express: f.Express}
}

// Child halves both components, truncating each to 10 yen.
func (f SingleTripAdultFare) Child() FarePair {
	return FarePair{
		Train:   TrainFare{Value: f.Train.Value.Scale(childRate)},
		Express: ExpressFare{Value: f.Express.Value.Scale(childRate)},
	}
}
