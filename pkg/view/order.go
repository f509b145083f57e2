package view

import (
	"time"

	"github.com/kmoo25z/ameriduka/internal/modules/orders"
)

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	ShippingFee     float64     `json:"shipping_fee"`
	Total           float64     `json:"total"`
	Currency        string      `json:"currency"`
	TotalLocal      float64     `json:"total_local"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"payment_status"`
	PaymentMethod   string      `json:"payment_method"`
	ShippingAddress string      `json:"shipping_address"`
	ShippingCity    string      `json:"shipping_city"`
	ShippingCountry string      `json:"shipping_country"`
	Phone           string      `json:"phone"`
	Notes           *string     `json:"notes,omitempty"`
	TrackingNumber  *string     `json:"tracking_number,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func FromOrder(o orders.Order) Order {
	items := []OrderItem{}
	for _, it := range o.LineItems() {
		items = append(items, OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       Dollars(it.PriceUSDCents),
		})
	}
	return Order{
		ID:              o.OrderID,
		UserID:          o.UserID,
		Items:           items,
		Subtotal:        Dollars(o.SubtotalUSDCents),
		ShippingFee:     Dollars(o.ShippingUSDCents),
		Total:           Dollars(o.TotalUSDCents),
		Currency:        o.Currency,
		TotalLocal:      Dollars(o.TotalLocalCents),
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		ShippingCity:    o.ShippingCity,
		ShippingCountry: o.ShippingCountry,
		Phone:           o.Phone,
		Notes:           o.Notes,
		TrackingNumber:  o.TrackingNumber,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromOrders(os []orders.Order) []Order {
	out := make([]Order, 0, len(os))
	for _, o := range os {
		out = append(out, FromOrder(o))
	}
	return out
}
