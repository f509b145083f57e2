package catalog

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("product not found")

type InsufficientStockItem struct {
	ProductID string
	Requested int
	Available int
}

type InsufficientStockError struct {
	Items []InsufficientStockItem
}

func (e *InsufficientStockError) Error() string {
	if len(e.Items) == 0 {
		return "insufficient stock"
	}
	it := e.Items[0]
	return fmt.Sprintf("insufficient stock: product=%s requested=%d available=%d", it.ProductID, it.Requested, it.Available)
}
