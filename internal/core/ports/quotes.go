package ports

import (
	"context"
	"errors"
	"time"

	"github.com/samirrijal/railfare/internal/core/domain"
)

// ErrCacheMiss is returned by QuoteCache.Lookup when no quote is stored under the key.
var ErrCacheMiss = errors.New("cache miss")

// QuoteCache stores computed quotes for identical requests.
type QuoteCache interface {
	Lookup(ctx context.Context, key string) (*domain.FareQuote, error)
	Store(ctx context.Context, key string, quote *domain.FareQuote, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// QuotePublisher publishes quote events to a message broker.
type QuotePublisher interface {
	PublishFareQuoted(ctx context.Context, quote *domain.FareQuote) error
}
