package ports

import (
	"context"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// PlacesGateway adapts search and detail lookups to the external places API.
type PlacesGateway interface {
	Search(ctx context.Context, req *domain.FilterRequest) (*domain.PagedResult, error)
	// GetDetail returns (nil, nil) when the place does not exist.
	GetDetail(ctx context.Context, placeID string) (*domain.RestaurantDetail, error)
}

// EventPublisher publishes restaurant lookup events to a message broker.
type EventPublisher interface {
	PublishSearch(ctx context.Context, event *domain.SearchEvent) error
	PublishDetailView(ctx context.Context, event *domain.DetailViewEvent) error
}
