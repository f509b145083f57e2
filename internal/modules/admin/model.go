package admin

import "time"

type Employee struct {
	EmployeeID           string    `gorm:"type:varchar(32);primaryKey"`
	UserID               string    `gorm:"type:varchar(32);not null;index"`
	Email                string    `gorm:"type:varchar(255);not null"`
	Name                 string    `gorm:"type:varchar(255);not null"`
	Phone                string    `gorm:"type:varchar(32);not null"`
	Role                 string    `gorm:"type:varchar(16);not null"`
	Department           string    `gorm:"type:varchar(64);not null"`
	SalaryCents          int64     `gorm:"not null"`
	CommissionRate       float64   `gorm:"not null"`
	TotalSalesCents      int64     `gorm:"not null;default:0"`
	TotalCommissionCents int64     `gorm:"not null;default:0"`
	CreatedAt            time.Time `gorm:"type:datetime(3);not null"`
}

func (Employee) TableName() string { return "employees" }

type CustomerNote struct {
	NoteID     string    `gorm:"type:varchar(32);primaryKey"`
	CustomerID string    `gorm:"type:varchar(32);not null;index"`
	AddedBy    string    `gorm:"type:varchar(32);not null"`
	Note       string    `gorm:"type:varchar(2048);not null"`
	NoteType   string    `gorm:"type:varchar(32);not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (CustomerNote) TableName() string { return "customer_notes" }
