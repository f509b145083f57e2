package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kmoo25z/ameriduka/internal/modules/orders"
)

// CheckoutService opens processor sessions for orders. Sessions are only
// created for the order's owner; elevated roles do not pay on behalf of
// customers.
type CheckoutService struct {
	db       *gorm.DB
	provider Provider
}

func NewCheckoutService(db *gorm.DB, provider Provider) *CheckoutService {
	return &CheckoutService{db: db, provider: provider}
}

type CheckoutResult struct {
	SessionID   string
	RedirectURL string
}

// CreateSession opens a hosted-checkout session for the order and records an
// initiated transaction row. Each call is a fresh attempt with its own row;
// no row is written when the processor call fails.
func (s *CheckoutService) CreateSession(ctx context.Context, orderID, userID, origin string) (CheckoutResult, error) {
	var o orders.Order
	err := s.db.WithContext(ctx).First(&o, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CheckoutResult{}, orders.ErrNotFound
	}
	if err != nil {
		return CheckoutResult{}, err
	}
	if o.UserID != userID {
		return CheckoutResult{}, orders.ErrForbidden
	}

	origin = strings.TrimRight(origin, "/")
	sess, err := s.provider.CreateSession(ctx, SessionRequest{
		AmountUSDCents: o.TotalUSDCents,
		Currency:       "USD",
		SuccessURL:     fmt.Sprintf("%s/orders/%s?session_id={CHECKOUT_SESSION_ID}", origin, o.OrderID),
		CancelURL:      origin + "/checkout?cancelled=true",
		Metadata: map[string]string{
			"order_id": o.OrderID,
			"user_id":  o.UserID,
		},
	})
	if err != nil {
		if errors.Is(err, ErrProcessor) {
			return CheckoutResult{}, err
		}
		return CheckoutResult{}, fmt.Errorf("%w: %v", ErrProcessor, err)
	}

	now := time.Now().UTC()
	txn := Transaction{
		TransactionID:  "txn_" + uuid.NewString()[:12],
		OrderID:        o.OrderID,
		UserID:         o.UserID,
		SessionID:      sess.SessionID,
		AmountUSDCents: o.TotalUSDCents,
		Currency:       "USD",
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  StatusInitiated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
		return CheckoutResult{}, err
	}

	if err := s.db.WithContext(ctx).Model(&orders.Order{}).
		Where("order_id = ? AND payment_status = ?", o.OrderID, orders.PaymentPending).
		Updates(map[string]any{
			"payment_status": orders.PaymentInitiated,
			"updated_at":     now,
		}).Error; err != nil {
		return CheckoutResult{}, err
	}

	return CheckoutResult{SessionID: sess.SessionID, RedirectURL: sess.RedirectURL}, nil
}
