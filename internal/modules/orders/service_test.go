package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kmoo25z/ameriduka/internal/modules/cart"
	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/modules/users"
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

	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &Order{}, &cart.Item{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id string, priceCents int64, stock int) {
	t.Helper()
	require.NoError(t, db.Create(&catalog.Product{
		ProductID:     id,
		Name:          "Product " + id,
		Description:   "test",
		Category:      catalog.CategoryPhones,
		Brand:         "Acme",
		Condition:     catalog.ConditionNew,
		PriceUSDCents: priceCents,
		Stock:         stock,
		CreatedAt:     time.Now().UTC(),
	}).Error)
}

func stockOf(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var p catalog.Product
	require.NoError(t, db.First(&p, "product_id = ?", id).Error)
	return p.Stock
}

func createInput(userID string, items ...ItemInput) CreateInput {
	return CreateInput{
		UserID:          userID,
		Items:           items,
		ShippingAddress: "1 Moi Avenue",
		ShippingCity:    "Nairobi",
		ShippingCountry: "Kenya",
		Phone:           "+254700000000",
		Currency:        "KES",
		PaymentMethod:   PaymentMethodStripe,
	}
}

func TestCreateReservesStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 2500, 5)

	o, err := svc.Create(context.Background(), createInput("user_1", ItemInput{ProductID: "prod_a", Quantity: 3}))
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	assert.Equal(t, int64(7500), o.SubtotalUSDCents)
	assert.Equal(t, int64(500), o.ShippingUSDCents)
	assert.Equal(t, int64(8000), o.TotalUSDCents)
	assert.Equal(t, 2, stockOf(t, db, "prod_a"))
}

func TestCreateSecondOrderCannotOversell(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 2500, 5)

	_, err := svc.Create(context.Background(), createInput("user_1", ItemInput{ProductID: "prod_a", Quantity: 3}))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createInput("user_2", ItemInput{ProductID: "prod_a", Quantity: 3}))
	var stockErr *catalog.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	// loser's transaction rolled back completely
	assert.Equal(t, 2, stockOf(t, db, "prod_a"))
	var count int64
	require.NoError(t, db.Model(&Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateInvalidQuantityLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 1000, 5)
	seedProduct(t, db, "prod_b", 1000, 5)

	_, err := svc.Create(context.Background(), createInput("user_1",
		ItemInput{ProductID: "prod_a", Quantity: 2},
		ItemInput{ProductID: "prod_b", Quantity: 0},
	))
	require.Error(t, err)

	assert.Equal(t, 5, stockOf(t, db, "prod_a"))
	assert.Equal(t, 5, stockOf(t, db, "prod_b"))
	var count int64
	require.NoError(t, db.Model(&Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTotalsInvariant(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 2599, 10)
	seedProduct(t, db, "prod_b", 999, 10)

	in := createInput("user_1",
		ItemInput{ProductID: "prod_a", Quantity: 2},
		ItemInput{ProductID: "prod_b", Quantity: 3},
	)
	in.ShippingCountry = "Germany"
	in.Currency = "EUR"

	o, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	var lineSum int64
	for _, it := range o.LineItems() {
		lineSum += it.PriceUSDCents * int64(it.Quantity)
	}
	assert.Equal(t, lineSum, o.SubtotalUSDCents)
	assert.Equal(t, o.SubtotalUSDCents+o.ShippingUSDCents, o.TotalUSDCents)
	assert.Equal(t, int64(2500), o.ShippingUSDCents)
}

func TestCreateConsumesCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 1000, 5)
	require.NoError(t, db.Create(&cart.Item{
		UserID: "user_1", ProductID: "prod_a", Quantity: 2,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}).Error)

	_, err := svc.Create(context.Background(), createInput("user_1", ItemInput{ProductID: "prod_a", Quantity: 2}))
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&cart.Item{}).Where("user_id = ?", "user_1").Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 1000, 5)

	o, err := svc.Create(context.Background(), createInput("user_1", ItemInput{ProductID: "prod_a", Quantity: 1}))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), o.OrderID, "user_1", users.RoleCustomer)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), o.OrderID, "user_2", users.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(context.Background(), o.OrderID, "user_2", users.RoleManager)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), o.OrderID, "user_2", users.RoleWarehouse)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), "ord_missing", "user_1", users.RoleCustomer)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusFollowsPipeline(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 1000, 5)

	o, err := svc.Create(context.Background(), createInput("user_1", ItemInput{ProductID: "prod_a", Quantity: 1}))
	require.NoError(t, err)
	ctx := context.Background()

	// skipping a step is rejected
	err = svc.UpdateStatus(ctx, o.OrderID, StatusShipped, users.RoleWarehouse)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	for _, next := range []string{StatusProcessing, StatusPacked, StatusShipped, StatusDelivered} {
		require.NoError(t, svc.UpdateStatus(ctx, o.OrderID, next, users.RoleWarehouse))
	}

	// terminal states are final
	err = svc.UpdateStatus(ctx, o.OrderID, StatusCancelled, users.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusRequiresFulfillmentRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 1000, 5)

	o, err := svc.Create(context.Background(), createInput("user_1", ItemInput{ProductID: "prod_a", Quantity: 1}))
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), o.OrderID, StatusProcessing, users.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.UpdateStatus(context.Background(), o.OrderID, StatusProcessing, users.RoleSupport)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelRestoresStockWhileHeld(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 1000, 5)

	o, err := svc.Create(context.Background(), createInput("user_1", ItemInput{ProductID: "prod_a", Quantity: 3}))
	require.NoError(t, err)
	require.Equal(t, 2, stockOf(t, db, "prod_a"))

	require.NoError(t, svc.UpdateStatus(context.Background(), o.OrderID, StatusCancelled, users.RoleManager))
	assert.Equal(t, 5, stockOf(t, db, "prod_a"))
}

func TestCancelAfterShipmentDoesNotRestoreStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 1000, 5)

	o, err := svc.Create(context.Background(), createInput("user_1", ItemInput{ProductID: "prod_a", Quantity: 3}))
	require.NoError(t, err)
	ctx := context.Background()

	for _, next := range []string{StatusProcessing, StatusPacked, StatusShipped} {
		require.NoError(t, svc.UpdateStatus(ctx, o.OrderID, next, users.RoleWarehouse))
	}

	// goods already left the warehouse; refund is a money matter only
	require.NoError(t, svc.UpdateStatus(ctx, o.OrderID, StatusRefunded, users.RoleManager))
	assert.Equal(t, 2, stockOf(t, db, "prod_a"))
}

func TestListScopesByRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, catalog.NewRepo(db))
	seedProduct(t, db, "prod_a", 1000, 50)

	ctx := context.Background()
	_, err := svc.Create(ctx, createInput("user_1", ItemInput{ProductID: "prod_a", Quantity: 1}))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createInput("user_2", ItemInput{ProductID: "prod_a", Quantity: 1}))
	require.NoError(t, err)

	mine, err := svc.List(ctx, "user_1", users.RoleCustomer, 50)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.List(ctx, "user_admin", users.RoleAdmin, 50)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
