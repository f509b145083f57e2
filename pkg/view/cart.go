package view

import "github.com/kmoo25z/ameriduka/internal/modules/cart"

type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
}

type Cart struct {
	Items         []CartItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Currency      string     `json:"currency"`
	SubtotalLocal float64    `json:"subtotal_local"`
}

func FromCart(s cart.Summary) Cart {
	items := []CartItem{}
	for _, it := range s.Items {
		items = append(items, CartItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     Dollars(it.PriceUSDCents),
			Quantity:  it.Quantity,
			Image:     it.Image,
			Stock:     it.Stock,
		})
	}
	return Cart{
		Items:         items,
		Subtotal:      Dollars(s.SubtotalUSDCents),
		Currency:      s.Currency,
		SubtotalLocal: Dollars(s.SubtotalLocalCents),
	}
}
