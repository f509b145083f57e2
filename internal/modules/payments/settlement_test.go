package payments

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/modules/orders"
	"github.com/kmoo25z/ameriduka/internal/modules/pricing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one connection, or every pooled conn gets its own empty :memory: db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &orders.Order{}, &Transaction{}))
	return db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedOrder(t *testing.T, db *gorm.DB, orderID, userID string, totalCents int64) orders.Order {
	t.Helper()
	require.NoError(t, db.Create(&catalog.Product{
		ProductID:     "prod_a",
		Name:          "Product A",
		Description:   "test",
		Category:      catalog.CategoryPhones,
		Brand:         "Acme",
		Condition:     catalog.ConditionNew,
		PriceUSDCents: totalCents - 500,
		Stock:         10,
		SoldCount:     0,
		CreatedAt:     time.Now().UTC(),
	}).Error)

	items, err := json.Marshal([]pricing.LineItem{
		{ProductID: "prod_a", ProductName: "Product A", Quantity: 1, PriceUSDCents: totalCents - 500},
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	o := orders.Order{
		OrderID:          orderID,
		UserID:           userID,
		Items:            datatypes.JSON(items),
		SubtotalUSDCents: totalCents - 500,
		ShippingUSDCents: 500,
		TotalUSDCents:    totalCents,
		Currency:         "USD",
		TotalLocalCents:  totalCents,
		Status:           orders.StatusPending,
		PaymentStatus:    orders.PaymentPending,
		PaymentMethod:    orders.PaymentMethodStripe,
		ShippingAddress:  "1 Moi Avenue",
		ShippingCity:     "Nairobi",
		ShippingCountry:  "Kenya",
		Phone:            "+254700000000",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func soldCount(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var p catalog.Product
	require.NoError(t, db.First(&p, "product_id = ?", id).Error)
	return p.SoldCount
}

func TestCheckoutCreatesOneTransactionPerAttempt(t *testing.T) {
	db := newTestDB(t)
	provider := NewMockProvider("whsec_test")
	checkout := NewCheckoutService(db, provider)
	seedOrder(t, db, "ord_1", "user_1", 8000)
	ctx := context.Background()

	first, err := checkout.CreateSession(ctx, "ord_1", "user_1", "https://shop.example")
	require.NoError(t, err)
	assert.NotEmpty(t, first.SessionID)
	assert.NotEmpty(t, first.RedirectURL)

	second, err := checkout.CreateSession(ctx, "ord_1", "user_1", "https://shop.example")
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	var txns []Transaction
	require.NoError(t, db.Find(&txns).Error)
	require.Len(t, txns, 2)
	for _, txn := range txns {
		assert.Equal(t, "ord_1", txn.OrderID)
		assert.Equal(t, int64(8000), txn.AmountUSDCents)
		assert.Equal(t, StatusInitiated, txn.PaymentStatus)
	}

	var o orders.Order
	require.NoError(t, db.First(&o, "order_id = ?", "ord_1").Error)
	assert.Equal(t, orders.PaymentInitiated, o.PaymentStatus)
}

func TestCheckoutOnlyForOwner(t *testing.T) {
	db := newTestDB(t)
	checkout := NewCheckoutService(db, NewMockProvider("whsec_test"))
	seedOrder(t, db, "ord_1", "user_1", 8000)

	_, err := checkout.CreateSession(context.Background(), "ord_1", "user_2", "https://shop.example")
	assert.ErrorIs(t, err, orders.ErrForbidden)

	_, err = checkout.CreateSession(context.Background(), "ord_missing", "user_1", "https://shop.example")
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestPollSettlesPaidSession(t *testing.T) {
	db := newTestDB(t)
	provider := NewMockProvider("whsec_test")
	checkout := NewCheckoutService(db, provider)
	settlement := NewSettlementService(db, provider, quietLogger())
	seedOrder(t, db, "ord_1", "user_1", 8000)
	ctx := context.Background()

	res, err := checkout.CreateSession(ctx, "ord_1", "user_1", "https://shop.example")
	require.NoError(t, err)

	// unpaid: poll reports status, settles nothing
	poll, err := settlement.Poll(ctx, res.SessionID)
	require.NoError(t, err)
	assert.False(t, poll.Settled)
	assert.Equal(t, "unpaid", poll.PaymentStatus)

	provider.MarkPaid(res.SessionID)

	poll, err = settlement.Poll(ctx, res.SessionID)
	require.NoError(t, err)
	assert.True(t, poll.Settled)

	var txn Transaction
	require.NoError(t, db.First(&txn, "session_id = ?", res.SessionID).Error)
	assert.Equal(t, StatusCompleted, txn.PaymentStatus)

	var o orders.Order
	require.NoError(t, db.First(&o, "order_id = ?", "ord_1").Error)
	assert.Equal(t, orders.PaymentCompleted, o.PaymentStatus)
	assert.Equal(t, orders.StatusProcessing, o.Status)
	assert.Equal(t, 1, soldCount(t, db, "prod_a"))
}

func TestSettlementIsIdempotentAcrossSignals(t *testing.T) {
	db := newTestDB(t)
	provider := NewMockProvider("whsec_test")
	checkout := NewCheckoutService(db, provider)
	settlement := NewSettlementService(db, provider, quietLogger())
	seedOrder(t, db, "ord_1", "user_1", 8000)
	ctx := context.Background()

	res, err := checkout.CreateSession(ctx, "ord_1", "user_1", "https://shop.example")
	require.NoError(t, err)
	provider.MarkPaid(res.SessionID)

	// poll, webhook, poll again: effects applied exactly once
	_, err = settlement.Poll(ctx, res.SessionID)
	require.NoError(t, err)

	body, sig := provider.SignedEvent(res.SessionID, PaidStatus)
	require.NoError(t, settlement.HandleWebhook(ctx, body, sig))

	_, err = settlement.Poll(ctx, res.SessionID)
	require.NoError(t, err)

	assert.Equal(t, 1, soldCount(t, db, "prod_a"))

	var o orders.Order
	require.NoError(t, db.First(&o, "order_id = ?", "ord_1").Error)
	assert.Equal(t, orders.PaymentCompleted, o.PaymentStatus)
}

func TestWebhookSettlesWithoutPoll(t *testing.T) {
	db := newTestDB(t)
	provider := NewMockProvider("whsec_test")
	checkout := NewCheckoutService(db, provider)
	settlement := NewSettlementService(db, provider, quietLogger())
	seedOrder(t, db, "ord_1", "user_1", 8000)
	ctx := context.Background()

	res, err := checkout.CreateSession(ctx, "ord_1", "user_1", "https://shop.example")
	require.NoError(t, err)

	body, sig := provider.SignedEvent(res.SessionID, PaidStatus)
	require.NoError(t, settlement.HandleWebhook(ctx, body, sig))

	var txn Transaction
	require.NoError(t, db.First(&txn, "session_id = ?", res.SessionID).Error)
	assert.Equal(t, StatusCompleted, txn.PaymentStatus)
	assert.Equal(t, 1, soldCount(t, db, "prod_a"))
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	db := newTestDB(t)
	provider := NewMockProvider("whsec_test")
	settlement := NewSettlementService(db, provider, quietLogger())

	err := settlement.HandleWebhook(context.Background(), []byte(`{"session_id":"cs_x"}`), "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrVerification)
}

func TestWebhookUnknownSessionIsNoOp(t *testing.T) {
	db := newTestDB(t)
	provider := NewMockProvider("whsec_test")
	settlement := NewSettlementService(db, provider, quietLogger())

	sess, err := provider.CreateSession(context.Background(), SessionRequest{AmountUSDCents: 100, Currency: "USD"})
	require.NoError(t, err)

	body, sig := provider.SignedEvent(sess.SessionID, PaidStatus)
	assert.NoError(t, settlement.HandleWebhook(context.Background(), body, sig))
}

func TestWebhookIgnoresUnpaidEvents(t *testing.T) {
	db := newTestDB(t)
	provider := NewMockProvider("whsec_test")
	checkout := NewCheckoutService(db, provider)
	settlement := NewSettlementService(db, provider, quietLogger())
	seedOrder(t, db, "ord_1", "user_1", 8000)
	ctx := context.Background()

	res, err := checkout.CreateSession(ctx, "ord_1", "user_1", "https://shop.example")
	require.NoError(t, err)

	body, sig := provider.SignedEvent(res.SessionID, "unpaid")
	require.NoError(t, settlement.HandleWebhook(ctx, body, sig))

	var txn Transaction
	require.NoError(t, db.First(&txn, "session_id = ?", res.SessionID).Error)
	assert.Equal(t, StatusInitiated, txn.PaymentStatus)
	assert.Equal(t, 0, soldCount(t, db, "prod_a"))
}

func TestSettlementDoesNotResurrectCancelledOrder(t *testing.T) {
	db := newTestDB(t)
	provider := NewMockProvider("whsec_test")
	checkout := NewCheckoutService(db, provider)
	settlement := NewSettlementService(db, provider, quietLogger())
	seedOrder(t, db, "ord_1", "user_1", 8000)
	ctx := context.Background()

	res, err := checkout.CreateSession(ctx, "ord_1", "user_1", "https://shop.example")
	require.NoError(t, err)

	require.NoError(t, db.Model(&orders.Order{}).
		Where("order_id = ?", "ord_1").
		Update("status", orders.StatusCancelled).Error)

	provider.MarkPaid(res.SessionID)
	_, err = settlement.Poll(ctx, res.SessionID)
	require.NoError(t, err)

	var o orders.Order
	require.NoError(t, db.First(&o, "order_id = ?", "ord_1").Error)
	assert.Equal(t, orders.StatusCancelled, o.Status)
	assert.Equal(t, orders.PaymentCompleted, o.PaymentStatus)
}

func TestSignatureRoundTrip(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)
	sig := SignPayload("secret", body, time.Now())

	assert.NoError(t, verifySignature("secret", body, sig, time.Now()))
	assert.Error(t, verifySignature("wrong", body, sig, time.Now()))
	assert.Error(t, verifySignature("secret", []byte(`{}`), sig, time.Now()))
	// stale timestamps are replays
	assert.Error(t, verifySignature("secret", body, sig, time.Now().Add(10*time.Minute)))
}
