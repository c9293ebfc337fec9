package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/samirrijal/railfare/internal/core/domain"
	"github.com/samirrijal/railfare/internal/core/ports"
)

const keyPrefix = "fare:quote:"

// QuoteCache implements ports.QuoteCache using Valkey (Redis-compatible).
type QuoteCache struct {
	client valkey.Client
}

// New creates a new Valkey cache client.
func New(addr string) (*QuoteCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &QuoteCache{client: client}, nil
}

// Lookup returns the quote stored under key, or ports.ErrCacheMiss.
func (c *QuoteCache) Lookup(ctx context.Context, key string) (*domain.FareQuote, error) {
	b, err := c.client.Do(ctx, c.client.B().Get().Key(keyPrefix+key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var q domain.FareQuote
	if err := json.Unmarshal(b, &q); err != nil {
		return nil, fmt.Errorf("decode cached quote: %w", err)
	}
	return &q, nil
}

// Store saves a quote. A non-positive ttl stores it without expiry.
func (c *QuoteCache) Store(ctx context.Context, key string, q *domain.FareQuote, ttl time.Duration) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	set := c.client.B().Set().Key(keyPrefix + key).Value(valkey.BinaryString(data))
	if ttl <= 0 {
		return c.client.Do(ctx, set.Build()).Error()
	}
	return c.client.Do(ctx, set.Ex(ttl).Build()).Error()
}

// Ping checks that the server is reachable.
func (c *QuoteCache) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *QuoteCache) Close() {
	c.client.Close()
}
