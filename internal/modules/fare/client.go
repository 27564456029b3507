// README: Client for the authoritative pricing endpoint.
package fare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wheels/internal/modules/trip"
	"wheels/internal/types"
)

// ErrPricingUnavailable is returned when the pricing service cannot produce
// an authoritative quote. Unlike distance resolution this is never silently
// defaulted: an incomplete fare must not be presented as final.
var ErrPricingUnavailable = errors.New("pricing service unavailable")

// PricingRequest carries everything the pricing endpoint needs to produce
// an authoritative quote for a selected vehicle.
type PricingRequest struct {
	ModelName    string
	ModelType    string
	Seats        int
	FuelType     string
	Availability string
	Price        types.Money
	Trip         trip.Configuration
	DistanceKm   float64
	Days         int
}

type Client struct {
	url    string
	client *http.Client
}

func NewClient(endpoint string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{url: endpoint, client: client}
}

type pricingResponse struct {
	DriverRate int64 `json:"driverrate"`
	GST        int64 `json:"gst"`
	Service    int64 `json:"service"`
	Total      int64 `json:"total"`
}

// QuoteFromServer fetches the server-calculated fare. On success the returned
// quote is flagged Calculated and supersedes the local percentage estimate.
func (c *Client) QuoteFromServer(ctx context.Context, req PricingRequest) (Quote, error) {
	form := url.Values{}
	form.Set("modelName", req.ModelName)
	form.Set("modelType", req.ModelType)
	form.Set("seats", strconv.Itoa(req.Seats))
	form.Set("fuelType", req.FuelType)
	form.Set("availability", req.Availability)
	form.Set("price", strconv.FormatInt(req.Price.Amount, 10))
	form.Set("pickupLocation", req.Trip.PickupLocation)
	form.Set("dropLocation", req.Trip.DropLocation)
	form.Set("date", req.Trip.PickupDate.Format(trip.DateLayout))
	if req.Trip.TripType == trip.RoundTrip {
		form.Set("returndate", req.Trip.ReturnOrPickupDate().Format(trip.DateLayout))
	}
	form.Set("time", req.Trip.PickupTime)
	form.Set("tripType", string(req.Trip.TripType))
	form.Set("distance", strconv.FormatFloat(req.DistanceKm, 'f', -1, 64))
	form.Set("days", strconv.Itoa(req.Days))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%w: status %d", ErrPricingUnavailable, resp.StatusCode)
	}

	var body pricingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}

	cur := req.Price.Currency
	if cur == "" {
		cur = "INR"
	}
	return Quote{
		BasePrice:       req.Price,
		ServiceCharge:   types.Money{Amount: body.Service, Currency: cur},
		Tax:             types.Money{Amount: body.GST, Currency: cur},
		DriverAllowance: types.Money{Amount: body.DriverRate, Currency: cur},
		Total:           types.Money{Amount: body.Total, Currency: cur},
		Calculated:      true,
	}, nil
}
