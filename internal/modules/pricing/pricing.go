// Package pricing turns product snapshots and quantities into a priced
// order. It is purely computational: the same input always yields the same
// quote and nothing is mutated, so callers may re-quote freely.
package pricing

import (
	"errors"

	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/shared/money"
)

// HomeCountry gets the domestic shipping rate; everywhere else pays the
// international flat fee.
const HomeCountry = "Kenya"

const (
	DomesticShippingCents      = 500  // 5.00 USD
	InternationalShippingCents = 2500 // 25.00 USD
)

// exchangeRates is a static table (base USD). Unknown currencies fall back
// to 1.0; local totals are display values, USD cents stay authoritative.
var exchangeRates = map[string]float64{
	"USD": 1.0,
	"KES": 129.50,
	"EUR": 0.92,
}

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type Line struct {
	Product  catalog.Product
	Quantity int
}

// LineItem is the immutable snapshot persisted on the order. Later catalog
// price changes never touch it.
type LineItem struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	PriceUSDCents int64  `json:"price_usd_cents"`
}

type Quote struct {
	Items            []LineItem
	SubtotalUSDCents int64
	ShippingUSDCents int64
	TotalUSDCents    int64
	Currency         string
	TotalLocalCents  int64
}

// QuoteOrder validates every line before reporting success: a quantity of
// zero or a quantity above the snapshot's stock fails the whole quote, and
// no caller may mutate anything until the full quote passed.
func QuoteOrder(lines []Line, shippingCountry, currency string) (Quote, error) {
	items := make([]LineItem, 0, len(lines))
	var subtotal int64

	for _, ln := range lines {
		if ln.Quantity < 1 {
			return Quote{}, ErrInvalidQuantity
		}
		if ln.Product.Stock < ln.Quantity {
			return Quote{}, &catalog.InsufficientStockError{Items: []catalog.InsufficientStockItem{
				{ProductID: ln.Product.ProductID, Requested: ln.Quantity, Available: ln.Product.Stock},
			}}
		}
		subtotal += ln.Product.PriceUSDCents * int64(ln.Quantity)
		items = append(items, LineItem{
			ProductID:     ln.Product.ProductID,
			ProductName:   ln.Product.Name,
			Quantity:      ln.Quantity,
			PriceUSDCents: ln.Product.PriceUSDCents,
		})
	}

	shipping := ShippingFeeCents(shippingCountry)
	total := subtotal + shipping

	return Quote{
		Items:            items,
		SubtotalUSDCents: subtotal,
		ShippingUSDCents: shipping,
		TotalUSDCents:    total,
		Currency:         currency,
		TotalLocalCents:  money.Convert(total, Rate(currency)),
	}, nil
}

func ShippingFeeCents(country string) int64 {
	if country == HomeCountry {
		return DomesticShippingCents
	}
	return InternationalShippingCents
}

func Rate(currency string) float64 {
	if r, ok := exchangeRates[currency]; ok {
		return r
	}
	return 1.0
}

// ConvertCents converts a USD cent amount into the target currency.
func ConvertCents(usdCents int64, currency string) int64 {
	return money.Convert(usdCents, Rate(currency))
}
