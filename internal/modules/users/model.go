package users

import "time"

const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSales      = "sales"
	RoleWarehouse  = "warehouse"
	RoleAccountant = "accountant"
	RoleSupport    = "support"
	RoleCustomer   = "customer"
)

type User struct {
	UserID        string    `gorm:"type:varchar(32);primaryKey"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash  string    `gorm:"type:varchar(128);not null"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Phone         *string   `gorm:"type:varchar(32)"`
	Role          string    `gorm:"type:varchar(16);not null;default:'customer';index"`
	Picture       *string   `gorm:"type:varchar(512)"`
	LoyaltyPoints int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"type:datetime(3);not null"`
}

func (User) TableName() string { return "users" }

// IsElevated reports whether the role may read orders it does not own.
func IsElevated(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSales:
		return true
	}
	return false
}

// CanUpdateFulfillment reports whether the role may move orders through the
// fulfillment pipeline.
func CanUpdateFulfillment(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSales, RoleWarehouse:
		return true
	}
	return false
}
