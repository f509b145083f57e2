package catalog

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type StockLine struct {
	ProductID string
	Qty       int
}

// ReserveStockInTx decrements stock for every line inside the caller's
// transaction. The decrement is a single conditional update per product
// (stock >= qty), so two concurrent orders can never drive stock negative:
// the loser's update matches zero rows and the whole transaction rolls back
// with an InsufficientStockError.
func ReserveStockInTx(ctx context.Context, tx *gorm.DB, lines []StockLine) error {
	if len(lines) == 0 {
		return nil
	}

	// deterministic order to avoid lock inversion between concurrent orders
	want := make(map[string]int, len(lines))
	for _, ln := range lines {
		q := ln.Qty
		if q < 1 {
			q = 1
		}
		want[ln.ProductID] += q
	}
	ids := make([]string, 0, len(want))
	for id := range want {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		req := want[id]
		res := tx.WithContext(ctx).
			Model(&Product{}).
			Where("product_id = ? AND stock >= ?", id, req).
			UpdateColumn("stock", gorm.Expr("stock - ?", req))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			avail := 0
			var p Product
			if err := tx.WithContext(ctx).First(&p, "product_id = ?", id).Error; err == nil {
				avail = p.Stock
			}
			return &InsufficientStockError{Items: []InsufficientStockItem{
				{ProductID: id, Requested: req, Available: avail},
			}}
		}
	}
	return nil
}

// RestoreStockInTx gives reserved stock back (order cancelled/refunded).
func RestoreStockInTx(ctx context.Context, tx *gorm.DB, lines []StockLine) error {
	for _, ln := range lines {
		if ln.Qty < 1 {
			continue
		}
		if err := tx.WithContext(ctx).
			Model(&Product{}).
			Where("product_id = ?", ln.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", ln.Qty)).Error; err != nil {
			return err
		}
	}
	return nil
}

// IncrementSoldCountInTx credits sold_count after settlement.
func IncrementSoldCountInTx(ctx context.Context, tx *gorm.DB, lines []StockLine) error {
	for _, ln := range lines {
		if ln.Qty < 1 {
			continue
		}
		if err := tx.WithContext(ctx).
			Model(&Product{}).
			Where("product_id = ?", ln.ProductID).
			UpdateColumn("sold_count", gorm.Expr("sold_count + ?", ln.Qty)).Error; err != nil {
			return err
		}
	}
	return nil
}

// --- retry helpers (deadlock/lock timeout) ---

func WithTxRetry(ctx context.Context, db *gorm.DB, attempts int, fn func(tx *gorm.DB) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(tx)
		})
		if err == nil {
			return nil
		}
		lastErr = err

		if isRetryableMySQLError(err) && i < attempts-1 {
			time.Sleep(time.Duration(50*(i+1)) * time.Millisecond)
			continue
		}
		return err
	}
	return lastErr
}

func isRetryableMySQLError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// 1213: Deadlock found; 1205: Lock wait timeout
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}
