package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/restofinder/internal/adapters/http"
	natsadapter "github.com/samirrijal/restofinder/internal/adapters/nats"
	"github.com/samirrijal/restofinder/internal/adapters/places"
	"github.com/samirrijal/restofinder/internal/core/domain"
	"github.com/samirrijal/restofinder/internal/core/usecases"
	"github.com/samirrijal/restofinder/internal/pkg/config"
	"github.com/samirrijal/restofinder/internal/pkg/logging"
	"github.com/samirrijal/restofinder/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load("restofinder-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Places API client, owned here for the life of the process.
	if cfg.Places.APIKey == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is not set")
	}
	mapsClient, err := places.NewClient(cfg.Places.APIKey, cfg.Places.BaseURL)
	if err != nil {
		log.Fatalf("places client: %v", err)
	}
	gateway := places.NewGateway(mapsClient,
		places.WithDefaultLocation(domain.GeoPoint{Lat: cfg.Places.DefaultLat, Lng: cfg.Places.DefaultLng}),
		places.WithRadius(cfg.Places.Radius),
	)

	opts := []usecases.Option{usecases.WithPageTokenDelay(cfg.Places.PageTokenDelay())}

	// NATS (optional)
	deps := &http.Dependencies{
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		Version:        version,
	}
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, events disabled", "error", err)
		} else {
			defer pub.Close()
			opts = append(opts, usecases.WithEvents(pub))
			deps.NATS = pub.Conn()
		}
	}

	deps.Restaurants = usecases.NewRestaurantService(gateway, opts...)

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024,
		AppName:      "Restofinder API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: "Link, X-Request-ID",
		MaxAge:        3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "version", version)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Paginated requests hold their connection for the token delay; allow for it.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
