package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Page      int
	Limit     int
	Category  string
	Brand     string
	Condition string
	MinPrice  *int64 // cents
	MaxPrice  *int64
	Search    string
	SortBy    string
	SortOrder string
	Featured  *bool
}

type ListResult struct {
	Products []Product
	Total    int64
	Page     int
	Limit    int
}

// sortColumns whitelists user-supplied sort keys.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"price_usd":  "price_usd_cents",
	"name":       "name",
	"rating":     "rating",
	"sold_count": "sold_count",
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 || limit > 50 {
		limit = 12
	}

	q := r.db.WithContext(ctx).Model(&Product{})
	if in.Category != "" {
		q = q.Where("category = ?", in.Category)
	}
	if in.Brand != "" {
		q = q.Where("brand LIKE ?", "%"+in.Brand+"%")
	}
	if in.Condition != "" {
		q = q.Where("`condition` = ?", in.Condition)
	}
	if in.MinPrice != nil {
		q = q.Where("price_usd_cents >= ?", *in.MinPrice)
	}
	if in.MaxPrice != nil {
		q = q.Where("price_usd_cents <= ?", *in.MaxPrice)
	}
	if s := strings.TrimSpace(in.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("name LIKE ? OR description LIKE ? OR brand LIKE ? OR tags LIKE ?", like, like, like, like)
	}
	if in.Featured != nil {
		q = q.Where("featured = ?", *in.Featured)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	col, ok := sortColumns[in.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(in.SortOrder, "asc") {
		dir = "ASC"
	}

	var products []Product
	if err := q.
		Order(col + " " + dir).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&products).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Products: products, Total: total, Page: page, Limit: limit}, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Featured(ctx context.Context, limit int) ([]Product, error) {
	if limit < 1 {
		limit = 8
	}
	var products []Product
	err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Limit(limit).
		Find(&products).Error
	return products, err
}

// Recommendations: same category, excluding the product itself.
func (r *Repo) Recommendations(ctx context.Context, id string, limit int) ([]Product, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var similar []Product
	err = r.db.WithContext(ctx).
		Where("category = ? AND product_id <> ?", p.Category, p.ProductID).
		Limit(limit).
		Find(&similar).Error
	return similar, err
}

type GroupCount struct {
	Value string `gorm:"column:value"`
	Count int64  `gorm:"column:cnt"`
}

func (r *Repo) Categories(ctx context.Context) ([]GroupCount, error) {
	var out []GroupCount
	err := r.db.WithContext(ctx).Model(&Product{}).
		Select("category AS value, COUNT(*) AS cnt").
		Group("category").
		Order("cnt DESC").
		Scan(&out).Error
	return out, err
}

func (r *Repo) Brands(ctx context.Context) ([]GroupCount, error) {
	var out []GroupCount
	err := r.db.WithContext(ctx).Model(&Product{}).
		Select("brand AS value, COUNT(*) AS cnt").
		Group("brand").
		Order("value ASC").
		Scan(&out).Error
	return out, err
}

func (r *Repo) Create(ctx context.Context, p Product) (Product, error) {
	if p.ProductID == "" {
		p.ProductID = "prod_" + uuid.NewString()[:12]
	}
	p.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]any) (Product, error) {
	res := r.db.WithContext(ctx).Model(&Product{}).
		Where("product_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return Product{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, "product_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStock overwrites the absolute stock level (admin inventory screen).
func (r *Repo) SetStock(ctx context.Context, id string, stock int) error {
	res := r.db.WithContext(ctx).Model(&Product{}).
		Where("product_id = ?", id).
		Update("stock", stock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Product{}).Count(&n).Error
	return n, err
}

func (r *Repo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Product{}).
		Where("stock <= ?", LowStockThreshold).
		Count(&n).Error
	return n, err
}

type InventoryParams struct {
	Page         int
	Limit        int
	LowStockOnly bool
}

func (r *Repo) Inventory(ctx context.Context, in InventoryParams) ([]Product, int64, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&Product{})
	if in.LowStockOnly {
		q = q.Where("stock <= ?", LowStockThreshold)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []Product
	if err := q.Limit(limit).Offset((page - 1) * limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
