package orders

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kmoo25z/ameriduka/internal/modules/cart"
	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/modules/pricing"
	"github.com/kmoo25z/ameriduka/internal/modules/users"
)

type Service struct {
	db      *gorm.DB
	catalog *catalog.Repo
}

func NewService(db *gorm.DB, cat *catalog.Repo) *Service {
	return &Service{db: db, catalog: cat}
}

type ItemInput struct {
	ProductID string
	Quantity  int
}

type CreateInput struct {
	UserID          string
	Items           []ItemInput
	ShippingAddress string
	ShippingCity    string
	ShippingCountry string
	Phone           string
	Currency        string
	PaymentMethod   string
	Notes           *string
}

// Create prices the full order before touching anything: every product is
// resolved and the whole quote must pass first, so a validation failure at
// item K can never leave stock from items 1..K-1 reserved. Only then does
// one transaction insert the order, conditionally decrement stock per line
// and consume the cart.
func (s *Service) Create(ctx context.Context, in CreateInput) (Order, error) {
	if len(in.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}

	lines := make([]pricing.Line, 0, len(in.Items))
	for _, it := range in.Items {
		p, err := s.catalog.Get(ctx, it.ProductID)
		if err != nil {
			return Order{}, err
		}
		lines = append(lines, pricing.Line{Product: p, Quantity: it.Quantity})
	}

	quote, err := pricing.QuoteOrder(lines, in.ShippingCountry, in.Currency)
	if err != nil {
		return Order{}, err
	}

	itemsJSON, err := json.Marshal(quote.Items)
	if err != nil {
		return Order{}, err
	}

	now := time.Now().UTC()
	o := Order{
		OrderID:          "ord_" + uuid.NewString()[:12],
		UserID:           in.UserID,
		Items:            datatypes.JSON(itemsJSON),
		SubtotalUSDCents: quote.SubtotalUSDCents,
		ShippingUSDCents: quote.ShippingUSDCents,
		TotalUSDCents:    quote.TotalUSDCents,
		Currency:         quote.Currency,
		TotalLocalCents:  quote.TotalLocalCents,
		Status:           StatusPending,
		PaymentStatus:    PaymentPending,
		PaymentMethod:    in.PaymentMethod,
		ShippingAddress:  in.ShippingAddress,
		ShippingCity:     in.ShippingCity,
		ShippingCountry:  in.ShippingCountry,
		Phone:            in.Phone,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	stockLines := make([]catalog.StockLine, 0, len(quote.Items))
	for _, it := range quote.Items {
		stockLines = append(stockLines, catalog.StockLine{ProductID: it.ProductID, Qty: it.Quantity})
	}

	err = catalog.WithTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(&o).Error; err != nil {
			return err
		}
		if err := catalog.ReserveStockInTx(ctx, tx, stockLines); err != nil {
			return err
		}
		return cart.ClearInTx(ctx, tx, in.UserID)
	})
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

// Get returns the order to its owner, an elevated role, or fulfillment
// staff. Warehouse needs to read the orders it moves.
func (s *Service) Get(ctx context.Context, orderID, actorID, actorRole string) (Order, error) {
	var o Order
	err := s.db.WithContext(ctx).First(&o, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	if o.UserID != actorID && !users.CanUpdateFulfillment(actorRole) {
		return Order{}, ErrForbidden
	}
	return o, nil
}

// List returns the actor's orders, newest first. Elevated roles see all.
func (s *Service) List(ctx context.Context, actorID, actorRole string, limit int) ([]Order, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	q := s.db.WithContext(ctx).Model(&Order{})
	if !users.IsElevated(actorRole) {
		q = q.Where("user_id = ?", actorID)
	}
	var out []Order
	err := q.Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

// UpdateStatus moves an order through the fulfillment pipeline, enforcing
// the transition table. Cancelling or refunding while the goods are still
// in the warehouse restores the reserved stock.
func (s *Service) UpdateStatus(ctx context.Context, orderID, newStatus, actorRole string) error {
	if !users.CanUpdateFulfillment(actorRole) {
		return ErrForbidden
	}
	if !IsFulfillmentStatus(newStatus) {
		return ErrInvalidTransition
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		err := tx.WithContext(ctx).First(&o, "order_id = ?", orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if !CanTransition(o.Status, newStatus) {
			return ErrInvalidTransition
		}

		// optimistic guard: a concurrent transition loses
		res := tx.WithContext(ctx).Model(&Order{}).
			Where("order_id = ? AND status = ?", o.OrderID, o.Status).
			Updates(map[string]any{
				"status":     newStatus,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		if (newStatus == StatusCancelled || newStatus == StatusRefunded) && stockStillHeld(o.Status) {
			var restore []catalog.StockLine
			for _, it := range o.LineItems() {
				restore = append(restore, catalog.StockLine{ProductID: it.ProductID, Qty: it.Quantity})
			}
			return catalog.RestoreStockInTx(ctx, tx, restore)
		}
		return nil
	})
}

// SetTracking records the carrier tracking number.
func (s *Service) SetTracking(ctx context.Context, orderID, trackingNumber, actorRole string) error {
	if !users.CanUpdateFulfillment(actorRole) {
		return ErrForbidden
	}
	res := s.db.WithContext(ctx).Model(&Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{
			"tracking_number": trackingNumber,
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
