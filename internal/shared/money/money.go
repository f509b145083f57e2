package money

import (
	"fmt"
	"math"
)

// All monetary amounts are stored as integer cents. JSON responses expose
// 2-decimal major units, matching the public API contract.

// FromFloat converts a major-unit amount (e.g. 19.99) to cents.
func FromFloat(v float64) int64 {
	return int64(math.Round(v * 100))
}

// ToFloat converts cents to a 2-decimal major-unit amount.
func ToFloat(cents int64) float64 {
	return math.Round(float64(cents)) / 100
}

// Convert applies an exchange rate to a cent amount, rounding to the cent.
func Convert(cents int64, rate float64) int64 {
	return int64(math.Round(float64(cents) * rate))
}

// Format renders a cent amount with its currency symbol.
func Format(currency string, cents int64) string {
	major := float64(cents) / 100.0
	switch currency {
	case "USD":
		return fmt.Sprintf("$%.2f", major)
	case "EUR":
		return fmt.Sprintf("€%.2f", major)
	case "KES":
		return fmt.Sprintf("KSh %.2f", major)
	default:
		return fmt.Sprintf("%.2f %s", major, currency)
	}
}
