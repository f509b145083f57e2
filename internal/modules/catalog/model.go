package catalog

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	CategoryPhones      = "phones"
	CategoryLaptops     = "laptops"
	CategoryTablets     = "tablets"
	CategoryAccessories = "accessories"
	CategoryAudio       = "audio"
	CategoryWearables   = "wearables"
)

const (
	ConditionNew         = "new"
	ConditionRefurbished = "refurbished"
	ConditionUsed        = "used"
)

// LowStockThreshold marks products counted as "low stock" on the admin
// dashboard and inventory screens.
const LowStockThreshold = 5

type Product struct {
	ProductID             string         `gorm:"type:varchar(32);primaryKey"`
	Name                  string         `gorm:"type:varchar(255);not null"`
	Description           string         `gorm:"type:text;not null"`
	Category              string         `gorm:"type:varchar(32);not null;index"`
	Brand                 string         `gorm:"type:varchar(128);not null;index"`
	Condition             string         `gorm:"type:varchar(16);not null;default:'new'"`
	PriceUSDCents         int64          `gorm:"not null"`
	OriginalPriceUSDCents *int64         `gorm:""`
	Stock                 int            `gorm:"not null;default:0"`
	Images                datatypes.JSON `gorm:"type:json"`
	Specifications        datatypes.JSON `gorm:"type:json"`
	WarrantyMonths        int            `gorm:"not null;default:12"`
	Featured              bool           `gorm:"not null;default:false;index"`
	Tags                  datatypes.JSON `gorm:"type:json"`
	Rating                float64        `gorm:"not null;default:0"`
	ReviewCount           int            `gorm:"not null;default:0"`
	SoldCount             int            `gorm:"not null;default:0"`
	CreatedAt             time.Time      `gorm:"type:datetime(3);not null"`
}

func (Product) TableName() string { return "products" }

// ImageList decodes the images JSON column; a missing or malformed column
// yields an empty slice.
func (p Product) ImageList() []string {
	var imgs []string
	_ = json.Unmarshal(p.Images, &imgs)
	return imgs
}

// TagList decodes the tags JSON column.
func (p Product) TagList() []string {
	var tags []string
	_ = json.Unmarshal(p.Tags, &tags)
	return tags
}
