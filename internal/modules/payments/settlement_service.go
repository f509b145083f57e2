package payments

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/modules/orders"
)

// SettlementService applies "payment collected" exactly once per session,
// no matter how often or through which path (status poll, webhook, both
// concurrently) the signal arrives.
type SettlementService struct {
	db       *gorm.DB
	provider Provider
	logger   *slog.Logger
}

func NewSettlementService(db *gorm.DB, provider Provider, logger *slog.Logger) *SettlementService {
	return &SettlementService{db: db, provider: provider, logger: logger}
}

type PollResult struct {
	SessionStatus
	Settled bool
}

// Poll asks the processor for the session's state and settles if it reports
// paid. The processor status is returned either way; a settlement failure is
// logged and left for the next signal to retry.
func (s *SettlementService) Poll(ctx context.Context, sessionID string) (PollResult, error) {
	st, err := s.provider.GetSessionStatus(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrProcessor) {
			return PollResult{}, err
		}
		return PollResult{}, errors.Join(ErrProcessor, err)
	}

	out := PollResult{SessionStatus: st}
	if st.PaymentStatus != PaidStatus {
		return out, nil
	}
	if err := s.settle(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "settlement failed, awaiting next signal",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
		return out, nil
	}
	out.Settled = true
	return out, nil
}

// HandleWebhook authenticates a pushed event and settles on paid. A
// verification failure is returned as ErrVerification; any other error is an
// internal settlement failure, which callers log and acknowledge anyway so
// the processor does not retry a payload we already understood.
func (s *SettlementService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	ev, err := s.provider.VerifyWebhook(body, signature)
	if err != nil {
		return err
	}
	if ev.PaymentStatus != PaidStatus {
		s.logger.InfoContext(ctx, "webhook ignored",
			slog.String("event_id", ev.EventID),
			slog.String("payment_status", ev.PaymentStatus))
		return nil
	}
	return s.settle(ctx, ev.SessionID)
}

// settle marks the session's transaction completed and applies the order
// side effects, all in one transaction. The conditional update is the
// idempotency gate: of any number of concurrent settles for the same
// session, exactly one matches a row and carries on; the rest stop as
// no-ops. A session with no transaction row is ignored.
func (s *SettlementService) settle(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txn Transaction
		err := tx.WithContext(ctx).First(&txn, "session_id = ?", sessionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WarnContext(ctx, "settlement for unknown session",
				slog.String("session_id", sessionID))
			return nil
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		res := tx.WithContext(ctx).Model(&Transaction{}).
			Where("session_id = ? AND payment_status <> ?", sessionID, StatusCompleted).
			Updates(map[string]any{
				"payment_status": StatusCompleted,
				"updated_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // already settled
		}

		var o orders.Order
		if err := tx.WithContext(ctx).First(&o, "order_id = ?", txn.OrderID).Error; err != nil {
			return err
		}

		if err := tx.WithContext(ctx).Model(&orders.Order{}).
			Where("order_id = ?", o.OrderID).
			Updates(map[string]any{
				"payment_status": orders.PaymentCompleted,
				"updated_at":     now,
			}).Error; err != nil {
			return err
		}
		// fulfillment only advances from pending; a cancelled order keeps
		// its state and the refund is handled out of band
		if err := tx.WithContext(ctx).Model(&orders.Order{}).
			Where("order_id = ? AND status = ?", o.OrderID, orders.StatusPending).
			Update("status", orders.StatusProcessing).Error; err != nil {
			return err
		}

		var sold []catalog.StockLine
		for _, it := range o.LineItems() {
			sold = append(sold, catalog.StockLine{ProductID: it.ProductID, Qty: it.Quantity})
		}
		if err := catalog.IncrementSoldCountInTx(ctx, tx, sold); err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "payment settled",
			slog.String("session_id", sessionID),
			slog.String("order_id", o.OrderID),
			slog.Int64("amount_usd_cents", txn.AmountUSDCents))
		return nil
	})
}
