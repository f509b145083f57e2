package view

import (
	"encoding/json"
	"time"

	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
)

type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
	Condition      string          `json:"condition"`
	Price          float64         `json:"price"`
	OriginalPrice  *float64        `json:"original_price,omitempty"`
	Stock          int             `json:"stock"`
	Images         []string        `json:"images"`
	Specifications json.RawMessage `json:"specifications,omitempty"`
	WarrantyMonths int             `json:"warranty_months"`
	Featured       bool            `json:"featured"`
	Tags           []string        `json:"tags"`
	Rating         float64         `json:"rating"`
	ReviewCount    int             `json:"review_count"`
	SoldCount      int             `json:"sold_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

func FromProduct(p catalog.Product) Product {
	out := Product{
		ID:             p.ProductID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Brand:          p.Brand,
		Condition:      p.Condition,
		Price:          Dollars(p.PriceUSDCents),
		Stock:          p.Stock,
		Images:         p.ImageList(),
		Specifications: json.RawMessage(p.Specifications),
		WarrantyMonths: p.WarrantyMonths,
		Featured:       p.Featured,
		Tags:           p.TagList(),
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		SoldCount:      p.SoldCount,
		CreatedAt:      p.CreatedAt,
	}
	if p.OriginalPriceUSDCents != nil {
		v := Dollars(*p.OriginalPriceUSDCents)
		out.OriginalPrice = &v
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

func FromProducts(ps []catalog.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p))
	}
	return out
}
