package reviews

import "time"

type Review struct {
	ReviewID  string    `gorm:"type:varchar(32);primaryKey"`
	ProductID string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_reviews_product_user,priority:1"`
	UserID    string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_reviews_product_user,priority:2"`
	UserName  string    `gorm:"type:varchar(255);not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:varchar(2048);not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Review) TableName() string { return "reviews" }
