package usecases

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/samirrijal/restofinder/internal/core/domain"
	"github.com/samirrijal/restofinder/internal/core/ports"
	"github.com/samirrijal/restofinder/internal/pkg/metrics"
)

// DefaultPageTokenDelay is how long a continuation token must age before the
// places API accepts it.
const DefaultPageTokenDelay = 2 * time.Second

// RestaurantService validates restaurant queries and forwards them to the
// places gateway.
type RestaurantService struct {
	places         ports.PlacesGateway
	events         ports.EventPublisher
	pageTokenDelay time.Duration
	now            func() time.Time
}

// Option configures a RestaurantService.
type Option func(*RestaurantService)

// WithPageTokenDelay overrides the wait applied before a paginated search.
func WithPageTokenDelay(d time.Duration) Option {
	return func(s *RestaurantService) {
		if d >= 0 {
			s.pageTokenDelay = d
		}
	}
}

// WithEvents publishes lookup events. A nil publisher disables publishing.
func WithEvents(p ports.EventPublisher) Option {
	return func(s *RestaurantService) { s.events = p }
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(places ports.PlacesGateway, opts ...Option) *RestaurantService {
	s := &RestaurantService{
		places:         places,
		pageTokenDelay: DefaultPageTokenDelay,
		now:            time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search validates raw query parameters and returns one page of restaurants.
// Validation failures are returned untouched; gateway failures are wrapped in
// *domain.UpstreamError and never retried.
func (s *RestaurantService) Search(ctx context.Context, raw url.Values) (*domain.PagedResult, error) {
	req, err := domain.ValidateQuery(raw)
	if err != nil {
		if ve, ok := domain.IsValidation(err); ok {
			metrics.ValidationFailures.WithLabelValues(string(ve.Code)).Inc()
		}
		return nil, err
	}

	if req.PageToken != "" {
		if err := s.waitForPageToken(ctx); err != nil {
			return nil, &domain.UpstreamError{Op: domain.OpSearch, Err: err}
		}
	}

	start := s.now()
	result, err := s.places.Search(ctx, req)
	if err != nil {
		return nil, &domain.UpstreamError{Op: domain.OpSearch, Err: err}
	}
	if result == nil {
		result = &domain.PagedResult{Items: []domain.RestaurantSummary{}}
	}

	s.publishSearch(ctx, &domain.SearchEvent{
		Time:     start,
		Filter:   req,
		Results:  len(result.Items),
		HasMore:  result.HasMore(),
		Duration: s.now().Sub(start),
	})

	return result, nil
}

// GetByID returns the full detail record for a place id.
func (s *RestaurantService) GetByID(ctx context.Context, id string) (*domain.RestaurantDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		metrics.ValidationFailures.WithLabelValues(string(domain.CodeInvalidID)).Inc()
		return nil, &domain.ValidationError{
			Code:    domain.CodeInvalidID,
			Field:   "id",
			Message: "Invalid restaurant ID",
			Details: "ID must be a valid string",
		}
	}

	detail, err := s.places.GetDetail(ctx, id)
	if err != nil {
		return nil, &domain.UpstreamError{Op: domain.OpDetails, Err: err}
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}

	if s.events != nil {
		ev := &domain.DetailViewEvent{Time: s.now(), PlaceID: detail.PlaceID, Name: detail.Name}
		if err := s.events.PublishDetailView(ctx, ev); err != nil {
			slog.WarnContext(ctx, "publish detail view failed", "place_id", id, "error", err)
		}
	}

	return detail, nil
}

// waitForPageToken blocks the calling request only. It returns early with the
// context error if the request is cancelled.
func (s *RestaurantService) waitForPageToken(ctx context.Context) error {
	if s.pageTokenDelay <= 0 {
		return nil
	}
	metrics.PageTokenWaits.Inc()

	t := time.NewTimer(s.pageTokenDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *RestaurantService) publishSearch(ctx context.Context, ev *domain.SearchEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishSearch(ctx, ev); err != nil {
		slog.WarnContext(ctx, "publish search event failed", "error", err)
	}
}
