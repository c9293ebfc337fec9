package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/samirrijal/railfare/internal/core/domain"
)

func TestSingleTripAdultFare_Child(t *testing.T) {
	f := domain.SingleTripAdultFare{
		Train:   domain.TrainFare{Value: 8910},
		Express: domain.ExpressFare{Value: 5490},
	}

	child := f.Child()
	if child.Train.Value != 4450 {
		t.Errorf("expected child train fare 4450, got %d", child.Train.Value)
	}
	if child.Express.Value != 2740 {
		t.Errorf("expected child express fare 2740, got %d", child.Express.Value)
	}

	adult := f.Adult()
	if adult.Sum() != 14400 {
		t.Errorf("expected adult sum 14400, got %d", adult.Sum())
	}
}

func TestFareQuote_JSONRoundTrip(t *testing.T) {
	date, _ := domain.NewDepartureDate(2024, 12, 28)
	q := domain.FareQuote{
		Section:     domain.RideSection{Departure: domain.Himeji, Arrival: domain.Tokyo},
		Train:       domain.Nozomi,
		SeatType:    domain.Unreserved,
		ReserveType: domain.RoundTrip,
		Date:        date,
		Season:      date.Season(),
		Passengers:  domain.NumberOfPassengers{Adult: 2, Child: 1},
		Total:       12340,
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got domain.FareQuote
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Section != q.Section || got.Train != q.Train || got.SeatType != q.SeatType ||
		got.ReserveType != q.ReserveType || got.Season != domain.Peak || got.Date.String() != "2024-12-28" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
