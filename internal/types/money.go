// README: Common money value object used across modules.
package types

import "fmt"

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Rupees builds an INR amount, the only currency the storefront quotes in.
func Rupees(amount int64) Money {
	return Money{Amount: amount, Currency: "INR"}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
