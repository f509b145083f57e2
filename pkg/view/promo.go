package view

import (
	"time"

	"github.com/kmoo25z/ameriduka/internal/modules/promos"
)

type Promo struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	MaxUses         int       `json:"max_uses"`
	UsesCount       int       `json:"uses_count"`
	ValidUntil      time.Time `json:"valid_until"`
	MinOrderAmount  float64   `json:"min_order_amount"`
	Active          bool      `json:"active"`
}

func FromPromo(p promos.PromoCode) Promo {
	return Promo{
		ID:              p.PromoID,
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent,
		MaxUses:         p.MaxUses,
		UsesCount:       p.UsesCount,
		ValidUntil:      p.ValidUntil,
		MinOrderAmount:  Dollars(p.MinOrderUSDCents),
		Active:          p.Active,
	}
}
