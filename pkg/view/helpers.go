package view

import "github.com/kmoo25z/ameriduka/internal/shared/money"

// Dollars renders integer cents as the 2-decimal float the API exposes.
func Dollars(cents int64) float64 {
	return money.ToFloat(cents)
}
