package frontend

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// ErrLocationUnavailable is returned when nearby mode cannot get a position.
var ErrLocationUnavailable = errors.New("location unavailable")

// LocationProvider returns the user's current position.
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (domain.GeoPoint, error)
}

// LocationFunc adapts a function to LocationProvider.
type LocationFunc func(ctx context.Context) (domain.GeoPoint, error)

func (f LocationFunc) CurrentLocation(ctx context.Context) (domain.GeoPoint, error) { return f(ctx) }

// Client is the API surface a Session needs.
type Client interface {
	Fetcher
	FetchRestaurantDetails(ctx context.Context, id string) (*domain.RestaurantDetail, error)
}

// Session ties filter selections to the result list: every effective filter
// change refetches page one.
type Session struct {
	client   Client
	notifier Notifier
	location LocationProvider
	logger   *slog.Logger

	filters *FilterState
	results *ResultAccumulator
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithNotifier routes user-facing messages to n.
func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) { s.notifier = n }
}

// WithLocationProvider enables nearby mode.
func WithLocationProvider(p LocationProvider) SessionOption {
	return func(s *Session) { s.location = p }
}

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session with default filters and an empty list.
func NewSession(client Client, opts ...SessionOption) *Session {
	s := &Session{
		client:   client,
		notifier: discardNotifier{},
		logger:   slog.Default(),
		filters:  NewFilterState(),
	}
	for _, o := range opts {
		o(s)
	}
	s.results = NewResultAccumulator(client, s.notifier)
	return s
}

// Filters exposes the filter state for reading.
func (s *Session) Filters() *FilterState { return s.filters }

// Results exposes the accumulated list for reading.
func (s *Session) Results() *ResultAccumulator { return s.results }

// Start loads the first page for the current filters.
func (s *Session) Start(ctx context.Context) error {
	return s.refetch(ctx)
}

// ChangeFilters applies changes and refetches if anything changed.
func (s *Session) ChangeFilters(ctx context.Context, changes ...FilterChange) error {
	if !s.filters.Apply(changes...) {
		return nil
	}
	return s.refetch(ctx)
}

// TogglePriceFilter switches the price range filter on (1..4) or off.
func (s *Session) TogglePriceFilter(ctx context.Context, on bool) error {
	if !s.filters.EnablePriceFilter(on) {
		return nil
	}
	return s.refetch(ctx)
}

// SetNearby switches nearby mode. Turning it on asks the LocationProvider
// for a position; on failure the user is notified, nearby mode stays off
// and ErrLocationUnavailable is returned.
func (s *Session) SetNearby(ctx context.Context, on bool) error {
	if !on {
		if !s.filters.setNearby(false, nil) {
			return nil
		}
		return s.refetch(ctx)
	}

	if s.location == nil {
		s.notifier.Notify(MsgLocationUnavailable)
		return ErrLocationUnavailable
	}
	pos, err := s.location.CurrentLocation(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "location lookup failed", "error", err)
		s.notifier.Notify(MsgLocationUnavailable)
		if s.filters.setNearby(false, nil) {
			return errors.Join(ErrLocationUnavailable, s.refetch(ctx))
		}
		return ErrLocationUnavailable
	}

	if !s.filters.setNearby(true, &pos) {
		return nil
	}
	return s.refetch(ctx)
}

// Reset restores default filters and refetches if anything changed.
func (s *Session) Reset(ctx context.Context) error {
	if !s.filters.Reset() {
		return nil
	}
	return s.refetch(ctx)
}

// LoadMore appends the next page. See ResultAccumulator.LoadMore.
func (s *Session) LoadMore(ctx context.Context) (bool, error) {
	return s.results.LoadMore(ctx)
}

// Restaurant fetches the detail record for id, notifying the user on failure.
func (s *Session) Restaurant(ctx context.Context, id string) (*domain.RestaurantDetail, error) {
	d, err := s.client.FetchRestaurantDetails(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "detail fetch failed", "place_id", id, "error", err)
		s.notifier.Notify(MsgDetailFetchFailed)
		return nil, err
	}
	return d, nil
}

// Markers returns map pins for the current list.
func (s *Session) Markers(hoveredID string) []Marker {
	return Markers(s.results.Items(), hoveredID)
}

func (s *Session) refetch(ctx context.Context) error {
	err := s.results.FilterChanged(ctx, s.filters.Params())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleResponse):
		s.logger.DebugContext(ctx, "dropped stale restaurant page")
	default:
		s.logger.ErrorContext(ctx, "restaurant fetch failed", "error", err)
	}
	return err
}
