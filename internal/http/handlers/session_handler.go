// README: Session handlers: vehicle selection, rehydration, quoting, discard.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wheels/internal/modules/distance"
	"wheels/internal/modules/fare"
	"wheels/internal/modules/session"
)

type SessionHandler struct {
	sessions session.Store
	resolver distance.Resolver
	pricing  *fare.Client
	logger   *slog.Logger
}

func NewSessionHandler(sessions session.Store, resolver distance.Resolver, pricing *fare.Client, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{sessions: sessions, resolver: resolver, pricing: pricing, logger: logger}
}

type selectRequest struct {
	Trip    tripPayload    `json:"trip"`
	Vehicle vehiclePayload `json:"vehicle"`
}

// Select is called when a cab is chosen on a listing page: it validates the
// trip, resolves distance (never failing), computes the provisional quote,
// and overwrites any prior session for the profile.
func (h *SessionHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cfg, err := req.Trip.toConfiguration()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	vehicle := req.Vehicle.toVehicle()
	sess := &session.BookingSession{
		Trip:       cfg,
		Vehicle:    vehicle,
		DistanceKm: h.resolver.Resolve(c.Request.Context(), cfg),
		Quote:      fare.Estimate(vehicle.Price),
		UpdatedAt:  time.Now(),
	}
	if err := h.sessions.Save(c.Request.Context(), c.Param("profile"), sess); err != nil {
		h.logger.Error("session: save failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save booking session"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Get rehydrates the session on page navigation. When none exists, a fresh
// trip built from the query parameters becomes the new session; with no
// parameters either, there is nothing to return.
func (h *SessionHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	profile := c.Param("profile")

	sess, err := h.sessions.Load(ctx, profile)
	if err != nil {
		h.logger.Error("session: load failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load booking session"})
		return
	}
	if sess != nil {
		c.JSON(http.StatusOK, sess)
		return
	}

	p := tripPayload{
		TripType:       c.Query("trip_type"),
		PickupLocation: c.Query("pickup_location"),
		DropLocation:   c.Query("drop_location"),
		PickupDate:     c.Query("pickup_date"),
		ReturnDate:     c.Query("return_date"),
		PickupTime:     c.Query("pickup_time"),
	}
	if p.PickupLocation == "" && p.DropLocation == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active booking session"})
		return
	}
	cfg, err := p.toConfiguration()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess = &session.BookingSession{Trip: cfg, UpdatedAt: time.Now()}
	if err := h.sessions.Save(ctx, profile, sess); err != nil {
		h.logger.Error("session: save failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save booking session"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *SessionHandler) Clear(c *gin.Context) {
	if err := h.sessions.Clear(c.Request.Context(), c.Param("profile")); err != nil {
		h.logger.Error("session: clear failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear booking session"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Quote fetches the authoritative fare for the stored session. Pricing
// failures block: no fallback, no Calculated flag, a visible error instead.
func (h *SessionHandler) Quote(c *gin.Context) {
	ctx := c.Request.Context()
	profile := c.Param("profile")

	sess, err := h.sessions.Load(ctx, profile)
	if err != nil {
		h.logger.Error("session: load failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load booking session"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active booking session"})
		return
	}

	quote, err := h.pricing.QuoteFromServer(ctx, fare.PricingRequest{
		ModelName:    sess.Vehicle.Name,
		ModelType:    sess.Vehicle.Category,
		Seats:        sess.Vehicle.Seats,
		FuelType:     sess.Vehicle.FuelType,
		Availability: sess.Vehicle.Availability,
		Price:        sess.Vehicle.Price,
		Trip:         sess.Trip,
		DistanceKm:   sess.DistanceKm,
		Days:         sess.Trip.Days(),
	})
	if err != nil {
		h.logger.Error("pricing: authoritative quote failed", "profile", profile, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "fare calculation failed, please try again"})
		return
	}

	sess.Quote = quote
	sess.UpdatedAt = time.Now()
	if err := h.sessions.Save(ctx, profile, sess); err != nil {
		h.logger.Error("session: save failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save booking session"})
		return
	}
	c.JSON(http.StatusOK, quote)
}
