package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/samirrijal/restofinder/internal/pkg/metrics"
)

func TestObservePlacesCall(t *testing.T) {
	before := testutil.ToFloat64(metrics.PlacesRequests.WithLabelValues("search", "ok"))
	metrics.ObservePlacesCall("search", "ok", time.Now())
	after := testutil.ToFloat64(metrics.PlacesRequests.WithLabelValues("search", "ok"))
	if after != before+1 {
		t.Errorf("expected counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(metrics.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", metrics.Handler())

	if _, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "restofinder_http_requests_total") {
		t.Errorf("expected http request counter in /metrics output")
	}
}
