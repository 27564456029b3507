// README: Common money value object used across modules.
package types

// Money is an amount in whole currency units (rupees, not paise).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func INR(amount int64) Money {
	return Money{Amount: amount, Currency: "INR"}
}
