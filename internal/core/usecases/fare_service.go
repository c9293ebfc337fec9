package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/railfare/internal/core/discount"
	"github.com/samirrijal/railfare/internal/core/domain"
	"github.com/samirrijal/railfare/internal/core/fare"
	"github.com/samirrijal/railfare/internal/core/ports"
	"github.com/samirrijal/railfare/internal/core/tariff"
	"github.com/samirrijal/railfare/internal/pkg/metrics"
	"github.com/samirrijal/railfare/internal/pkg/telemetry"
)

var tracer = otel.Tracer("github.com/samirrijal/railfare/internal/core/usecases")

// MaxPassengers caps adults plus children in one request.
const MaxPassengers = 10000

// QuoteInput is a fare request as received from a caller, before parsing.
type QuoteInput struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Train    string `json:"train"`
	Seat     string `json:"seat"`
	Trip     string `json:"trip"`
	Date     string `json:"date"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
}

// QuoteRequest is a parsed fare request.
type QuoteRequest struct {
	Section     domain.RideSection
	Train       domain.Train
	SeatType    domain.SeatType
	ReserveType domain.ReserveType
	Date        domain.DepartureDate
	Passengers  domain.NumberOfPassengers
}

// Request parses the input. Empty train, seat and trip default to hikari,
// reserved and one-way.
func (in QuoteInput) Request() (QuoteRequest, error) {
	var req QuoteRequest
	var err error

	if req.Section.Departure, err = domain.ParseStation(in.From); err != nil {
		return QuoteRequest{}, fmt.Errorf("from: %w", err)
	}
	if req.Section.Arrival, err = domain.ParseStation(in.To); err != nil {
		return QuoteRequest{}, fmt.Errorf("to: %w", err)
	}
	if in.Train != "" {
		if req.Train, err = domain.ParseTrain(in.Train); err != nil {
			return QuoteRequest{}, err
		}
	}
	if in.Seat != "" {
		if req.SeatType, err = domain.ParseSeatType(in.Seat); err != nil {
			return QuoteRequest{}, err
		}
	}
	if in.Trip != "" {
		if req.ReserveType, err = domain.ParseReserveType(in.Trip); err != nil {
			return QuoteRequest{}, err
		}
	}
	if req.Date, err = domain.ParseDepartureDate(in.Date); err != nil {
		return QuoteRequest{}, err
	}
	req.Passengers = domain.NumberOfPassengers{Adult: in.Adults, Child: in.Children}
	return req, nil
}

// CacheKey identifies requests that always price the same.
func (r QuoteRequest) CacheKey() string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s:%d:%d",
		r.Section.Departure, r.Section.Arrival, r.Train, r.SeatType, r.ReserveType,
		r.Date, r.Passengers.Adult, r.Passengers.Child)
}

func (r QuoteRequest) validate() error {
	adults, children := r.Passengers.Adult, r.Passengers.Child
	if adults < 0 || children < 0 ||
		adults > MaxPassengers || children > MaxPassengers || adults+children > MaxPassengers {
		return fmt.Errorf("%w: %d adults, %d children (0..%d in total)",
			domain.ErrPassengerCountOutOfRange, adults, children, MaxPassengers)
	}
	if r.Section.Departure == r.Section.Arrival {
		return fmt.Errorf("%w: %s", domain.ErrSameStation, r.Section.Departure)
	}
	return nil
}

// FareService prices journeys.
type FareService struct {
	cache     ports.QuoteCache
	publisher ports.QuotePublisher
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewFareService creates a FareService. cache and publisher may be nil.
func NewFareService(cache ports.QuoteCache, publisher ports.QuotePublisher, cacheTTL time.Duration) *FareService {
	return &FareService{
		cache:     cache,
		publisher: publisher,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// Quote prices a request.
func (s *FareService) Quote(ctx context.Context, req QuoteRequest) (*domain.FareQuote, error) {
	ctx, span := tracer.Start(ctx, "FareService.Quote", trace.WithAttributes(
		attribute.String(telemetry.AttrFrom, req.Section.Departure.String()),
		attribute.String(telemetry.AttrTo, req.Section.Arrival.String()),
		attribute.String(telemetry.AttrTrain, req.Train.String()),
		attribute.String(telemetry.AttrSeat, req.SeatType.String()),
		attribute.String(telemetry.AttrTrip, req.ReserveType.String()),
		attribute.Int(telemetry.AttrAdults, req.Passengers.Adult),
		attribute.Int(telemetry.AttrChildren, req.Passengers.Child),
	))
	defer span.End()

	q, err := s.quote(ctx, req)
	if err != nil {
		metrics.FareQuoteErrors.WithLabelValues(errorReason(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String(telemetry.AttrSeason, q.Season.String()),
		attribute.Int64(telemetry.AttrTotal, int64(q.Total)),
	)
	return q, nil
}

func (s *FareService) quote(ctx context.Context, req QuoteRequest) (*domain.FareQuote, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	key := req.CacheKey()
	if s.cache != nil {
		q, err := s.cache.Lookup(ctx, key)
		switch {
		case err == nil:
			trace.SpanFromContext(ctx).SetAttributes(attribute.Bool(telemetry.AttrCacheHit, true))
			metrics.CacheHits.WithLabelValues("fare_quote").Inc()
			return q, nil
		case errors.Is(err, ports.ErrCacheMiss):
			metrics.CacheMisses.WithLabelValues("fare_quote").Inc()
		default:
			slog.WarnContext(ctx, "quote cache lookup failed", "key", key, "error", err)
		}
	}

	q, err := s.compute(req)
	if err != nil {
		return nil, err
	}

	metrics.FareQuotes.WithLabelValues(q.ReserveType.String(), q.SeatType.String()).Inc()
	metrics.FareQuoteAmount.Observe(float64(q.Total))
	for _, name := range q.Breakdown.Discounts {
		metrics.DiscountsApplied.WithLabelValues(name).Inc()
	}

	slog.DebugContext(ctx, "fare quoted",
		"from", q.Section.Departure.String(),
		"to", q.Section.Arrival.String(),
		"season", q.Season.String(),
		"discounts", q.Breakdown.Discounts,
		"total", int64(q.Total),
	)

	if s.cache != nil {
		if err := s.cache.Store(ctx, key, q, s.cacheTTL); err != nil {
			slog.WarnContext(ctx, "quote cache store failed", "key", key, "error", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishFareQuoted(ctx, q); err != nil {
			slog.WarnContext(ctx, "publish fare quoted failed", "error", err)
		}
	}

	return q, nil
}

func (s *FareService) compute(req QuoteRequest) (*domain.FareQuote, error) {
	km, err := req.Section.OperatingKilometer()
	if err != nil {
		return nil, err
	}

	season := req.Date.Season()
	base, err := tariff.SingleTripAdultFareFor(req.Section, req.Train, req.SeatType, req.Date)
	if err != nil {
		return nil, err
	}
	individual, err := discount.ResolveIndividual(req.Section, req.Passengers, season)
	if err != nil {
		return nil, err
	}
	overall := discount.ResolveOverall(req.Passengers)

	breakdown, err := fare.Compose(req.ReserveType, req.Passengers, base, overall, individual)
	if err != nil {
		return nil, err
	}

	return &domain.FareQuote{
		Section:     req.Section,
		Train:       req.Train,
		SeatType:    req.SeatType,
		ReserveType: req.ReserveType,
		Date:        req.Date,
		Season:      season,
		Passengers:  req.Passengers,
		DistanceKm:  km,
		Breakdown:   breakdown,
		Total:       breakdown.Total,
		QuotedAt:    s.now().UTC(),
	}, nil
}

// TotalFare prices a journey from typed values and returns only the total.
func (s *FareService) TotalFare(
	departure, arrival domain.Station,
	train domain.Train,
	seat domain.SeatType,
	reserve domain.ReserveType,
	year, month, day int,
	adults, children int,
) (domain.Money, error) {
	date, err := domain.NewDepartureDate(year, month, day)
	if err != nil {
		return 0, err
	}
	req := QuoteRequest{
		Section:     domain.RideSection{Departure: departure, Arrival: arrival},
		Train:       train,
		SeatType:    seat,
		ReserveType: reserve,
		Date:        date,
		Passengers:  domain.NumberOfPassengers{Adult: adults, Child: children},
	}
	if err := req.validate(); err != nil {
		return 0, err
	}
	q, err := s.compute(req)
	if err != nil {
		return 0, err
	}
	return q.Total, nil
}

// Routes lists the priced station pairs.
func (s *FareService) Routes() []domain.RouteInfo {
	pairs := domain.KnownPairs()
	out := make([]domain.RouteInfo, 0, len(pairs))
	for _, p := range pairs {
		km, _ := domain.RideSection{Departure: p.From, Arrival: p.To}.OperatingKilometer()
		out = append(out, domain.RouteInfo{From: p.From, To: p.To, DistanceKm: km})
	}
	return out
}

// Stations lists every station in line order.
func (s *FareService) Stations() []domain.Station {
	return domain.Stations()
}

// IsInputError reports whether err was caused by a malformed request rather
// than by a pricing rule.
func IsInputError(err error) bool {
	for _, target := range []error{
		domain.ErrUnknownStation,
		domain.ErrUnknownTrain,
		domain.ErrUnknownSeatType,
		domain.ErrUnknownReserveType,
		domain.ErrInvalidDate,
		domain.ErrSameStation,
		domain.ErrPassengerCountOutOfRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownRoute):
		return "unknown_route"
	case errors.Is(err, domain.ErrInvalidPassengerCount), errors.Is(err, domain.ErrPassengerCountOutOfRange):
		return "invalid_passenger_count"
	case IsInputError(err):
		return "invalid_input"
	default:
		return "internal"
	}
}
