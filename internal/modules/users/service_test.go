package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}))
	return NewService(db, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{
		Email:    "Amina@Example.Com",
		Password: "secret123",
		Name:     "Amina",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "amina@example.com", u.Email)
	assert.Equal(t, RoleCustomer, u.Role)
	assert.Zero(t, u.LoyaltyPoints)

	_, _, err = svc.Login(ctx, "amina@example.com", "secret123")
	assert.NoError(t, err)

	_, _, err = svc.Login(ctx, "amina@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "secret123", Name: "A"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Email: "A@B.COM", Password: "other456", Name: "B"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestVerifyTokenReloadsUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "secret123", Name: "A"})
	require.NoError(t, err)

	got, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.UserID, got.UserID)

	// role changes take effect without reissuing the token
	require.NoError(t, svc.db.Model(&User{}).Where("user_id = ?", u.UserID).Update("role", RoleManager).Error)
	got, err = svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, got.Role)

	_, err = svc.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRoleChecks(t *testing.T) {
	assert.True(t, IsElevated(RoleAdmin))
	assert.True(t, IsElevated(RoleManager))
	assert.True(t, IsElevated(RoleSales))
	assert.False(t, IsElevated(RoleWarehouse))
	assert.False(t, IsElevated(RoleCustomer))

	assert.True(t, CanUpdateFulfillment(RoleWarehouse))
	assert.True(t, CanUpdateFulfillment(RoleAdmin))
	assert.False(t, CanUpdateFulfillment(RoleAccountant))
	assert.False(t, CanUpdateFulfillment(RoleCustomer))
}
