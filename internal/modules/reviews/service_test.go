package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &Review{}))
	require.NoError(t, db.Create(&catalog.Product{
		ProductID:     "prod_a",
		Name:          "Product A",
		Description:   "test",
		Category:      catalog.CategoryPhones,
		Brand:         "Acme",
		Condition:     catalog.ConditionNew,
		PriceUSDCents: 1000,
		Stock:         5,
		CreatedAt:     time.Now().UTC(),
	}).Error)
	return db
}

func productAggregate(t *testing.T, db *gorm.DB) (float64, int) {
	t.Helper()
	var p catalog.Product
	require.NoError(t, db.First(&p, "product_id = ?", "prod_a").Error)
	return p.Rating, p.ReviewCount
}

func TestCreateUpdatesAggregate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{ProductID: "prod_a", UserID: "user_1", UserName: "Amina", Rating: 5, Comment: "great"})
	require.NoError(t, err)

	rating, count := productAggregate(t, db)
	assert.Equal(t, 5.0, rating)
	assert.Equal(t, 1, count)

	_, err = svc.Create(ctx, CreateInput{ProductID: "prod_a", UserID: "user_2", UserName: "Brian", Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	rating, count = productAggregate(t, db)
	assert.InDelta(t, 3.5, rating, 1e-9)
	assert.Equal(t, 2, count)
}

func TestCreateOnePerUserPerProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{ProductID: "prod_a", UserID: "user_1", UserName: "Amina", Rating: 4, Comment: "good"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{ProductID: "prod_a", UserID: "user_1", UserName: "Amina", Rating: 1, Comment: "changed my mind"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// duplicate attempt must not touch the aggregate
	rating, count := productAggregate(t, db)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 1, count)
}

func TestCreateValidatesInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{ProductID: "prod_a", UserID: "user_1", Rating: 0, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(ctx, CreateInput{ProductID: "prod_a", UserID: "user_1", Rating: 6, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(ctx, CreateInput{ProductID: "prod_missing", UserID: "user_1", Rating: 3, Comment: "x"})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestListByProductNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for i, user := range []string{"user_1", "user_2", "user_3"} {
		r := Review{
			ReviewID:  "rev_" + user,
			ProductID: "prod_a",
			UserID:    user,
			UserName:  user,
			Rating:    3,
			Comment:   "ok",
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&r).Error)
	}

	list, err := svc.ListByProduct(ctx, "prod_a")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "user_3", list[0].UserID)
	assert.Equal(t, "user_1", list[2].UserID)
}
