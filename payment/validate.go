package payment

import (
	"fmt"
)

// MaxAmount is the ceiling in minor currency units accepted per payment.
const MaxAmount = 100000

var allowedCurrencies = map[string]bool{
	"usd": true,
	"eur": true,
	"gbp": true,
}

// ValidateAmount applies the amount ceiling and the currency allow-list.
// Both payment entry points use it, amounts are validated identically no
// matter which processor handles the charge. An empty currency defaults to
// usd. The returned message is safe to echo to the caller.
func ValidateAmount(amount float64, currency string) (int64, string, string) {
	if amount <= 0 || amount != float64(int64(amount)) {
		return 0, "", "Invalid amount: must be a positive whole number of minor units"
	}
	if amount > MaxAmount {
		return 0, "", fmt.Sprintf("Invalid amount: must not exceed %d", MaxAmount)
	}

	if currency == "" {
		currency = "usd"
	}
	if !allowedCurrencies[currency] {
		return 0, "", "Invalid currency: must be one of usd, eur, gbp"
	}

	return int64(amount), currency, ""
}
