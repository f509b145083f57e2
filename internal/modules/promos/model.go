package promos

import "time"

type PromoCode struct {
	PromoID          string    `gorm:"type:varchar(32);primaryKey"`
	Code             string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	DiscountPercent  int       `gorm:"not null"`
	MaxUses          int       `gorm:"not null"`
	UsesCount        int       `gorm:"not null;default:0"`
	ValidUntil       time.Time `gorm:"type:datetime(3);not null"`
	MinOrderUSDCents int64     `gorm:"not null;default:0"`
	Active           bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time `gorm:"type:datetime(3);not null"`
}

func (PromoCode) TableName() string { return "promo_codes" }
