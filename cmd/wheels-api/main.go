// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wheels/internal/config"
	httptransport "wheels/internal/http"
	"wheels/internal/infra"
	"wheels/internal/maps"
	"wheels/internal/modules/booking"
	"wheels/internal/modules/distance"
	"wheels/internal/modules/fare"
	"wheels/internal/modules/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	sessions := session.NewRedisStore(redisClient, logger)

	var resolver distance.Resolver
	if cfg.Maps.APIKey != "" {
		resolver, err = maps.NewDistanceService(cfg.Maps.APIKey, logger)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
	} else {
		resolver = distance.NewEndpointResolver(cfg.Services.DistanceURL, nil, logger)
	}

	pricing := fare.NewClient(cfg.Services.PricingURL, nil)

	bookingSvc := booking.NewService(booking.ServiceDeps{
		Sessions:       sessions,
		Events:         booking.NewStore(dbPool),
		ReservationURL: cfg.Services.ReservationURL,
		Logger:         logger,
	})

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Sessions:  sessions,
		Resolver:  resolver,
		Pricing:   pricing,
		Booking:   bookingSvc,
		Logger:    logger,
		RateLimit: cfg.RateLimit,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	logger.Info("wheels api listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
