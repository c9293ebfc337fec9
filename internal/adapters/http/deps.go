package http

import (
	"github.com/samirrijal/railfare/internal/core/ports"
	"github.com/samirrijal/railfare/internal/core/usecases"
)

// BrokerStatus reports message broker connectivity.
type BrokerStatus interface {
	Connected() bool
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Fares  *usecases.FareService
	Cache  ports.QuoteCache // nil when caching is disabled
	Broker BrokerStatus     // nil when event publishing is disabled
}
