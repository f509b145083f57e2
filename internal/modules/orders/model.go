package orders

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/kmoo25z/ameriduka/internal/modules/pricing"
)

const (
	PaymentMethodStripe = "stripe"
	PaymentMethodPaypal = "paypal"
	PaymentMethodMpesa  = "mpesa"
)

// Order is one purchase intent. Amounts and line items are snapshots fixed
// at creation; only the two status fields, the tracking number and
// updated_at ever change afterwards.
type Order struct {
	OrderID          string         `gorm:"type:varchar(32);primaryKey"`
	UserID           string         `gorm:"type:varchar(32);not null;index:ix_orders_user_created,priority:1"`
	Items            datatypes.JSON `gorm:"type:json;not null"`
	SubtotalUSDCents int64          `gorm:"not null"`
	ShippingUSDCents int64          `gorm:"not null"`
	TotalUSDCents    int64          `gorm:"not null"`
	Currency         string         `gorm:"type:char(3);not null"`
	TotalLocalCents  int64          `gorm:"not null"`
	Status           string         `gorm:"type:varchar(16);not null;index"`
	PaymentStatus    string         `gorm:"type:varchar(16);not null;index"`
	PaymentMethod    string         `gorm:"type:varchar(16);not null"`
	ShippingAddress  string         `gorm:"type:varchar(255);not null"`
	ShippingCity     string         `gorm:"type:varchar(128);not null"`
	ShippingCountry  string         `gorm:"type:varchar(64);not null"`
	Phone            string         `gorm:"type:varchar(32);not null"`
	Notes            *string        `gorm:"type:varchar(512)"`
	TrackingNumber   *string        `gorm:"type:varchar(64)"`
	CreatedAt        time.Time      `gorm:"type:datetime(3);not null;index:ix_orders_user_created,priority:2"`
	UpdatedAt        time.Time      `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

// LineItems decodes the items snapshot column.
func (o Order) LineItems() []pricing.LineItem {
	var items []pricing.LineItem
	_ = json.Unmarshal(o.Items, &items)
	return items
}
