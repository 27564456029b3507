// README: Distance resolution with a fixed fallback so booking never blocks on routing.
package distance

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wheels/internal/modules/trip"
)

// FallbackKm is substituted whenever the routing service is unreachable or
// returns a non-positive value. Distance is advisory, so resolution never
// surfaces an error to the caller.
const FallbackKm = 100

type Resolver interface {
	Resolve(ctx context.Context, t trip.Configuration) float64
}

// EndpointResolver posts the trip parameters to the in-house routing endpoint.
type EndpointResolver struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewEndpointResolver(endpoint string, client *http.Client, logger *slog.Logger) *EndpointResolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EndpointResolver{url: endpoint, client: client, logger: logger}
}

type distanceResponse struct {
	Distance float64 `json:"distance"`
}

func (r *EndpointResolver) Resolve(ctx context.Context, t trip.Configuration) float64 {
	form := url.Values{}
	form.Set("tripType", string(t.TripType))
	form.Set("pickupLocation", t.PickupLocation)
	form.Set("dropLocation", t.DropLocation)
	form.Set("date", t.PickupDate.Format(trip.DateLayout))
	if t.TripType == trip.RoundTrip {
		form.Set("returnDate", t.ReturnOrPickupDate().Format(trip.DateLayout))
	}
	form.Set("time", t.PickupTime)
	form.Set("distance", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, strings.NewReader(form.Encode()))
	if err != nil {
		r.logger.Warn("distance: building request failed, using fallback", "err", err)
		return FallbackKm
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("distance: routing service unreachable, using fallback", "err", err)
		return FallbackKm
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("distance: routing service returned non-OK, using fallback", "status", resp.StatusCode)
		return FallbackKm
	}

	var body distanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		r.logger.Warn("distance: unparseable routing response, using fallback", "err", err)
		return FallbackKm
	}
	if body.Distance <= 0 {
		r.logger.Warn("distance: non-positive distance from routing service, using fallback", "distance", body.Distance)
		return FallbackKm
	}
	return body.Distance
}
