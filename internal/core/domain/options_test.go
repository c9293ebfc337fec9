package domain_test

import (
	"errors"
	"testing"

	"github.com/samirrijal/railfare/internal/core/domain"
)

func TestParseOptions(t *testing.T) {
	if tr, err := domain.ParseTrain("premium"); err != nil || tr != domain.Nozomi {
		t.Errorf("ParseTrain(premium) = %v, %v", tr, err)
	}
	if tr, err := domain.ParseTrain("Hikari"); err != nil || tr != domain.Hikari {
		t.Errorf("ParseTrain(Hikari) = %v, %v", tr, err)
	}
	if _, err := domain.ParseTrain("kodama"); !errors.Is(err, domain.ErrUnknownTrain) {
		t.Errorf("expected ErrUnknownTrain, got %v", err)
	}

	if s, err := domain.ParseSeatType("free"); err != nil || s != domain.Unreserved {
		t.Errorf("ParseSeatType(free) = %v, %v", s, err)
	}
	if _, err := domain.ParseSeatType("green"); !errors.Is(err, domain.ErrUnknownSeatType) {
		t.Errorf("expected ErrUnknownSeatType, got %v", err)
	}

	if r, err := domain.ParseReserveType("return"); err != nil || r != domain.RoundTrip {
		t.Errorf("ParseReserveType(return) = %v, %v", r, err)
	}
	if _, err := domain.ParseReserveType("open"); !errors.Is(err, domain.ErrUnknownReserveType) {
		t.Errorf("expected ErrUnknownReserveType, got %v", err)
	}
}

func TestReserveType_Multiplier(t *testing.T) {
	if domain.OneWay.Multiplier() != 1 {
		t.Errorf("expected 1, got %d", domain.OneWay.Multiplier())
	}
	if domain.RoundTrip.Multiplier() != 2 {
		t.Errorf("expected 2, got %d", domain.RoundTrip.Multiplier())
	}
}

func TestNumberOfPassengers_Total(t *testing.T) {
	n := domain.NumberOfPassengers{Adult: 40, Child: 20}
	if n.Total() != 60 {
		t.Errorf("expected 60, got %d", n.Total())
	}
}
