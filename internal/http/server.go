// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wheels/internal/config"
	"wheels/internal/http/handlers"
	"wheels/internal/http/middleware"
	"wheels/internal/modules/booking"
	"wheels/internal/modules/distance"
	"wheels/internal/modules/fare"
	"wheels/internal/modules/session"
)

type ServerDeps struct {
	Sessions  session.Store
	Resolver  distance.Resolver
	Pricing   *fare.Client
	Booking   *booking.Service
	Logger    *slog.Logger
	RateLimit config.RateLimitConfig
}

type Server struct {
	sessions  session.Store
	resolver  distance.Resolver
	pricing   *fare.Client
	booking   *booking.Service
	logger    *slog.Logger
	rateLimit config.RateLimitConfig
}

func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		sessions:  deps.Sessions,
		resolver:  deps.Resolver,
		pricing:   deps.Pricing,
		booking:   deps.Booking,
		logger:    logger,
		rateLimit: deps.RateLimit,
	}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(s.logger))
	// The booking widget is embedded on every city landing page, so the API
	// is cross-origin by definition.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Accept", "Origin", "X-Request-ID"},
		MaxAge:          24 * time.Hour,
	}))
	r.Use(middleware.NewRateLimiter(s.rateLimit.PerMinute, s.rateLimit.Burst).Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	tripHandler := handlers.NewTripHandler()
	sessionHandler := handlers.NewSessionHandler(s.sessions, s.resolver, s.pricing, s.logger)
	bookingHandler := handlers.NewBookingHandler(s.booking)

	api := r.Group("/api")
	api.POST("/trips/validate", tripHandler.Validate)
	api.PUT("/sessions/:profile", sessionHandler.Select)
	api.GET("/sessions/:profile", sessionHandler.Get)
	api.DELETE("/sessions/:profile", sessionHandler.Clear)
	api.POST("/sessions/:profile/quote", sessionHandler.Quote)
	api.POST("/sessions/:profile/submit", bookingHandler.Submit)

	return r
}
