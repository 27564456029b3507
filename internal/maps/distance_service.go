package maps

import (
	"context"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"

	"wheels/internal/modules/distance"
	"wheels/internal/modules/trip"
)

// DistanceService resolves travel distance through the Google Distance Matrix
// API. It honors the same never-fail contract as the endpoint resolver: any
// API failure yields the fixed fallback distance.
type DistanceService struct {
	client *maps.Client
	logger *slog.Logger
}

var _ distance.Resolver = (*DistanceService)(nil)

// NewDistanceService creates a DistanceService with the given API key.
func NewDistanceService(apiKey string, logger *slog.Logger) (*DistanceService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DistanceService{client: client, logger: logger}, nil
}

func (s *DistanceService) Resolve(ctx context.Context, t trip.Configuration) float64 {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{t.PickupLocation},
		Destinations: []string{t.DropLocation},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	}
	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		s.logger.Warn("distance: matrix api error, using fallback", "err", err)
		return distance.FallbackKm
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		s.logger.Warn("distance: empty matrix response, using fallback")
		return distance.FallbackKm
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" || el.Distance.Meters <= 0 {
		s.logger.Warn("distance: no route between locations, using fallback",
			"status", el.Status, "pickup", t.PickupLocation, "drop", t.DropLocation)
		return distance.FallbackKm
	}
	return float64(el.Distance.Meters) / 1000.0
}
