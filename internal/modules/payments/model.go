package payments

import "time"

const (
	StatusInitiated = "initiated"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Transaction is one attempt to collect payment for an order through a
// processor session. Retried checkouts create new rows; at most one row per
// session ever reaches completed.
type Transaction struct {
	TransactionID  string    `gorm:"type:varchar(32);primaryKey"`
	OrderID        string    `gorm:"type:varchar(32);not null;index:ix_payment_transactions_order_id"`
	UserID         string    `gorm:"type:varchar(32);not null"`
	SessionID      string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_payment_transactions_session"`
	AmountUSDCents int64     `gorm:"not null"`
	Currency       string    `gorm:"type:char(3);not null"`
	PaymentMethod  string    `gorm:"type:varchar(16);not null"`
	PaymentStatus  string    `gorm:"type:varchar(16);not null"`
	CreatedAt      time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt      time.Time `gorm:"type:datetime(3);not null"`
}

func (Transaction) TableName() string { return "payment_transactions" }
