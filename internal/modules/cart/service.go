package cart

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/modules/pricing"
)

type Service struct {
	db      *gorm.DB
	catalog *catalog.Repo
}

func NewService(db *gorm.DB, cat *catalog.Repo) *Service {
	return &Service{db: db, catalog: cat}
}

// DetailedItem joins the stored line with live product data for display.
type DetailedItem struct {
	ProductID     string
	Name          string
	PriceUSDCents int64
	Quantity      int
	Image         string
	Stock         int
}

type Summary struct {
	Items              []DetailedItem
	SubtotalUSDCents   int64
	Currency           string
	SubtotalLocalCents int64
}

// Get returns the cart with product details. Lines whose product has been
// deleted since are silently skipped, matching the storefront behavior.
func (s *Service) Get(ctx context.Context, userID, currency string) (Summary, error) {
	var rows []Item
	if err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows, "user_id = ?", userID).Error; err != nil {
		return Summary{}, err
	}

	out := Summary{Items: []DetailedItem{}, Currency: currency}
	for _, row := range rows {
		p, err := s.catalog.Get(ctx, row.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return Summary{}, err
		}
		image := ""
		if imgs := p.ImageList(); len(imgs) > 0 {
			image = imgs[0]
		}
		out.Items = append(out.Items, DetailedItem{
			ProductID:     p.ProductID,
			Name:          p.Name,
			PriceUSDCents: p.PriceUSDCents,
			Quantity:      row.Quantity,
			Image:         image,
			Stock:         p.Stock,
		})
		out.SubtotalUSDCents += p.PriceUSDCents * int64(row.Quantity)
	}
	out.SubtotalLocalCents = pricing.ConvertCents(out.SubtotalUSDCents, currency)
	return out, nil
}

// Add merges the quantity into an existing line, pre-checking stock. The
// pre-check is advisory only; the binding check happens at order creation.
func (s *Service) Add(ctx context.Context, userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return err
	}
	if p.Stock < qty {
		return &catalog.InsufficientStockError{Items: []catalog.InsufficientStockItem{
			{ProductID: productID, Requested: qty, Available: p.Stock},
		}}
	}

	now := time.Now().UTC()
	var existing Item
	err = s.db.WithContext(ctx).First(&existing, "user_id = ? AND product_id = ?", userID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.WithContext(ctx).Create(&Item{
			UserID:    userID,
			ProductID: productID,
			Quantity:  qty,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
	}
	if err != nil {
		return err
	}

	newQty := existing.Quantity + qty
	if newQty > p.Stock {
		return &catalog.InsufficientStockError{Items: []catalog.InsufficientStockItem{
			{ProductID: productID, Requested: newQty, Available: p.Stock},
		}}
	}
	return s.db.WithContext(ctx).Model(&Item{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]any{"quantity": newQty, "updated_at": now}).Error
}

// Update sets an absolute quantity; zero removes the line.
func (s *Service) Update(ctx context.Context, userID, productID string, qty int) error {
	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return err
	}
	if qty == 0 {
		return s.db.WithContext(ctx).
			Delete(&Item{}, "user_id = ? AND product_id = ?", userID, productID).Error
	}
	if qty > p.Stock {
		return &catalog.InsufficientStockError{Items: []catalog.InsufficientStockItem{
			{ProductID: productID, Requested: qty, Available: p.Stock},
		}}
	}
	return s.db.WithContext(ctx).Model(&Item{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]any{"quantity": qty, "updated_at": time.Now().UTC()}).Error
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Delete(&Item{}, "user_id = ?", userID).Error
}

// ClearInTx is used by order creation, which consumes the cart inside its
// own transaction.
func ClearInTx(ctx context.Context, tx *gorm.DB, userID string) error {
	return tx.WithContext(ctx).Delete(&Item{}, "user_id = ?", userID).Error
}
