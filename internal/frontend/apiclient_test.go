package frontend_test

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttputil"

	handler "github.com/samirrijal/restofinder/internal/adapters/http"
	"github.com/samirrijal/restofinder/internal/core/domain"
	"github.com/samirrijal/restofinder/internal/core/usecases"
	"github.com/samirrijal/restofinder/internal/frontend"
)

type stubGateway struct {
	search func(req *domain.FilterRequest) (*domain.PagedResult, error)
	detail func(id string) (*domain.RestaurantDetail, error)
}

func (g *stubGateway) Search(_ context.Context, req *domain.FilterRequest) (*domain.PagedResult, error) {
	return g.search(req)
}

func (g *stubGateway) GetDetail(_ context.Context, id string) (*domain.RestaurantDetail, error) {
	return g.detail(id)
}

// startAPI serves the real HTTP routes over an in-memory listener.
func startAPI(t *testing.T, gw *stubGateway) *frontend.APIClient {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, &handler.Dependencies{
		Restaurants: usecases.NewRestaurantService(gw, usecases.WithPageTokenDelay(0)),
	})

	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return frontend.NewAPIClient("http://restofinder.test",
		frontend.WithDial(func(string) (net.Conn, error) { return ln.Dial() }))
}

func TestAPIClientFetchRestaurants(t *testing.T) {
	var got *domain.FilterRequest
	client := startAPI(t, &stubGateway{
		search: func(req *domain.FilterRequest) (*domain.PagedResult, error) {
			got = req
			rating := 4.4
			return &domain.PagedResult{
				Items: []domain.RestaurantSummary{
					{PlaceID: "p1", Name: "Noodle Bar", Rating: &rating, Location: &domain.GeoPoint{Lat: 1, Lng: 2}},
				},
				ContinuationToken: "next",
			}, nil
		},
	})

	page, err := client.FetchRestaurants(context.Background(), url.Values{"keyword": {"noodles"}, "minprice": {"2"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || page.Items[0].PlaceID != "p1" || *page.Items[0].Rating != 4.4 {
		t.Errorf("unexpected page %+v", page)
	}
	if page.ContinuationToken != "next" {
		t.Errorf("expected token, got %q", page.ContinuationToken)
	}
	if got.Keyword != "noodles" || got.MinPrice == nil || *got.MinPrice != 2 {
		t.Errorf("params not forwarded: %+v", got)
	}
}

func TestAPIClientValidationError(t *testing.T) {
	client := startAPI(t, &stubGateway{})

	_, err := client.FetchRestaurants(context.Background(), url.Values{"minprice": {"3"}, "maxprice": {"2"}})
	var se *frontend.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != 400 || se.Message != "minPrice cannot be greater than maxPrice" {
		t.Errorf("unexpected error %+v", se)
	}
}

func TestAPIClientFetchDetails(t *testing.T) {
	client := startAPI(t, &stubGateway{
		detail: func(id string) (*domain.RestaurantDetail, error) {
			if id != "abc" {
				return nil, nil
			}
			return &domain.RestaurantDetail{
				RestaurantSummary: domain.RestaurantSummary{PlaceID: id, Name: "Bistro"},
				Phone:             "(555) 010-0000",
			}, nil
		},
	})

	d, err := client.FetchRestaurantDetails(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Bistro" || d.Phone != "(555) 010-0000" {
		t.Errorf("unexpected detail %+v", d)
	}

	_, err = client.FetchRestaurantDetails(context.Background(), "missing")
	var se *frontend.StatusError
	if !errors.As(err, &se) || se.Status != 404 || se.Message != "Restaurant not found" {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestAPIClientCancelledContext(t *testing.T) {
	client := frontend.NewAPIClient("http://restofinder.test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.FetchRestaurants(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
