// README: Provisional fare quote computed from flat percentage rules.
package fare

import (
	"math"

	"wheels/internal/types"
)

const (
	serviceChargeRate = 0.10
	taxRate           = 0.05
)

// Quote is the fare breakdown shown to the user before submission.
// Calculated marks a quote whose numbers came from the pricing service;
// such a quote is authoritative and must not be recomputed locally.
type Quote struct {
	BasePrice       types.Money `json:"base_price"`
	ServiceCharge   types.Money `json:"service_charge"`
	Tax             types.Money `json:"tax"`
	DriverAllowance types.Money `json:"driver_allowance"`
	Total           types.Money `json:"total"`
	Calculated      bool        `json:"calculated"`
}

// Estimate derives a provisional quote from the vehicle base price.
// Pure: the total is always recomputed from the base, never carried over.
func Estimate(basePrice types.Money) Quote {
	service := pct(basePrice.Amount, serviceChargeRate)
	tax := pct(basePrice.Amount, taxRate)
	cur := basePrice.Currency
	return Quote{
		BasePrice:       basePrice,
		ServiceCharge:   types.Money{Amount: service, Currency: cur},
		Tax:             types.Money{Amount: tax, Currency: cur},
		DriverAllowance: types.Money{Amount: 0, Currency: cur},
		Total:           types.Money{Amount: basePrice.Amount + service + tax, Currency: cur},
	}
}

func pct(amount int64, rate float64) int64 {
	return int64(math.Round(float64(amount) * rate))
}
