package http

import (
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/restofinder/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Restaurants *usecases.RestaurantService
	NATS        *nats.Conn // optional, only used for readiness
	// RequestTimeout bounds each restaurant request, page-token delay included.
	// Zero means 15s.
	RequestTimeout time.Duration
	Version        string
}

func (d *Dependencies) requestTimeout() time.Duration {
	if d.RequestTimeout <= 0 {
		return 15 * time.Second
	}
	return d.RequestTimeout
}
