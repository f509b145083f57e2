package cart

import "time"

// Item is one product line in a user's cart. One row per (user, product);
// adding the same product again merges quantities.
type Item struct {
	UserID    string    `gorm:"type:varchar(32);primaryKey"`
	ProductID string    `gorm:"type:varchar(32);primaryKey"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Item) TableName() string { return "cart_items" }
