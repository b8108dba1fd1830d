package places

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"googlemaps.github.io/maps"

	"github.com/samirrijal/restofinder/internal/core/domain"
	"github.com/samirrijal/restofinder/internal/pkg/metrics"
	"github.com/samirrijal/restofinder/internal/pkg/telemetry"
)

// DefaultType is searched when the request names no place type.
const DefaultType = "restaurant"

// DefaultRadius is the search radius in meters when ranking by prominence.
const DefaultRadius = 5000

// DetailFields is the field set requested from Place Details.
var DetailFields = []maps.PlaceDetailsFieldMask{
	"name",
	"formatted_address",
	"rating",
	"photos",
	"geometry",
	"formatted_phone_number",
	"website",
	"opening_hours",
}

// Client is the subset of *maps.Client used by the gateway.
type Client interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

// Gateway implements ports.PlacesGateway on top of the Google Places API.
type Gateway struct {
	client          Client
	defaultLocation domain.GeoPoint
	radius          uint
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithDefaultLocation sets the search centre used when a request has none.
func WithDefaultLocation(p domain.GeoPoint) GatewayOption {
	return func(g *Gateway) { g.defaultLocation = p }
}

// WithRadius overrides DefaultRadius.
func WithRadius(meters uint) GatewayOption {
	return func(g *Gateway) {
		if meters > 0 {
			g.radius = meters
		}
	}
}

// NewGateway wraps an already constructed places client. The caller owns the
// client's lifecycle.
func NewGateway(client Client, opts ...GatewayOption) *Gateway {
	g := &Gateway{client: client, radius: DefaultRadius}
	for _, o := range opts {
		o(g)
	}
	return g
}

// NewClient builds a Google Maps client for apiKey. baseURL is only set in
// tests and local stubs.
func NewClient(apiKey, baseURL string) (*maps.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("places api key is required")
	}
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return c, nil
}

// NearbyRequest maps a validated filter onto a Nearby Search request.
// Radius and rank-by-distance are mutually exclusive upstream, so the radius
// is left unset when ranking by distance.
func (g *Gateway) NearbyRequest(req *domain.FilterRequest) *maps.NearbySearchRequest {
	loc := g.defaultLocation
	if p, ok := req.Location(); ok {
		loc = p
	}

	r := &maps.NearbySearchRequest{
		Location:  &maps.LatLng{Lat: loc.Lat, Lng: loc.Lng},
		Keyword:   req.Keyword,
		OpenNow:   req.OpenNow,
		RankBy:    maps.RankBy(req.RankBy),
		Type:      maps.PlaceType(DefaultType),
		PageToken: req.PageToken,
	}
	if req.RankBy != domain.RankByDistance {
		r.Radius = g.radius
	}
	if req.Type != "" {
		r.Type = maps.PlaceType(req.Type)
	}
	if req.MinPrice != nil {
		r.MinPrice = maps.PriceLevel(strconv.Itoa(*req.MinPrice))
	}
	if req.MaxPrice != nil {
		r.MaxPrice = maps.PriceLevel(strconv.Itoa(*req.MaxPrice))
	}
	return r
}

// Search runs a Nearby Search. Upstream errors are returned unchanged.
func (g *Gateway) Search(ctx context.Context, req *domain.FilterRequest) (*domain.PagedResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "places.NearbySearch")
	defer span.End()

	r := g.NearbyRequest(req)
	span.SetAttributes(
		attribute.String("places.type", string(r.Type)),
		attribute.String("places.rank_by", string(r.RankBy)),
		attribute.Bool("places.paginated", r.PageToken != ""),
	)

	start := time.Now()
	resp, err := g.client.NearbySearch(ctx, r)
	if err != nil {
		metrics.ObservePlacesCall(domain.OpSearch, "error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	metrics.ObservePlacesCall(domain.OpSearch, "ok", start)

	items := make([]domain.RestaurantSummary, 0, len(resp.Results))
	for _, res := range resp.Results {
		items = append(items, summaryFromSearch(res))
	}
	span.SetAttributes(attribute.Int("places.results", len(items)))

	return &domain.PagedResult{Items: items, ContinuationToken: resp.NextPageToken}, nil
}

// GetDetail runs a Place Details lookup. A missing place yields (nil, nil);
// any other failure is logged and replaced by domain.ErrDetailFetch.
func (g *Gateway) GetDetail(ctx context.Context, placeID string) (*domain.RestaurantDetail, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "places.PlaceDetails")
	defer span.End()
	span.SetAttributes(attribute.String("places.place_id", placeID))

	start := time.Now()
	res, err := g.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  DetailFields,
	})
	if err != nil {
		if isNotFound(err) {
			metrics.ObservePlacesCall(domain.OpDetails, "not_found", start)
			return nil, nil
		}
		metrics.ObservePlacesCall(domain.OpDetails, "error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "place details failed", "place_id", placeID, "error", err)
		return nil, domain.ErrDetailFetch
	}
	if res.PlaceID == "" && res.Name == "" {
		metrics.ObservePlacesCall(domain.OpDetails, "not_found", start)
		return nil, nil
	}
	metrics.ObservePlacesCall(domain.OpDetails, "ok", start)

	if res.PlaceID == "" {
		res.PlaceID = placeID
	}
	return detailFromResult(res), nil
}

// isNotFound matches the upstream statuses the maps client reports for an
// unknown place id, e.g. "maps: NOT_FOUND - ".
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "NOT_FOUND") || strings.Contains(msg, "ZERO_RESULTS")
}

func summaryFromSearch(r maps.PlacesSearchResult) domain.RestaurantSummary {
	return buildSummary(r.PlaceID, r.Name, r.Rating, r.Photos, r.Geometry)
}

func detailFromResult(r maps.PlaceDetailsResult) *domain.RestaurantDetail {
	d := &domain.RestaurantDetail{
		RestaurantSummary: buildSummary(r.PlaceID, r.Name, r.Rating, r.Photos, r.Geometry),
		Address:           r.FormattedAddress,
		Phone:             r.FormattedPhoneNumber,
		Website:           r.Website,
	}
	if r.OpeningHours != nil {
		d.OpenNow = r.OpeningHours.OpenNow
		if len(r.OpeningHours.WeekdayText) > 0 {
			d.WeeklyHours = append([]string(nil), r.OpeningHours.WeekdayText...)
		}
	}
	return d
}

func buildSummary(placeID, name string, rating float32, photos []maps.Photo, geo maps.AddressGeometry) domain.RestaurantSummary {
	s := domain.RestaurantSummary{PlaceID: placeID, Name: name}
	if rating > 0 {
		// Shortest float32 decimal form, so 4.3 stays 4.3.
		v, _ := strconv.ParseFloat(strconv.FormatFloat(float64(rating), 'f', -1, 32), 64)
		s.Rating = &v
	}
	if len(photos) > 0 {
		s.PhotoReference = photos[0].PhotoReference
	}
	if geo.Location.Lat != 0 || geo.Location.Lng != 0 {
		s.Location = &domain.GeoPoint{Lat: geo.Location.Lat, Lng: geo.Location.Lng}
	}
	return s
}
