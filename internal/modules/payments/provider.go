package payments

import "context"

// PaidStatus is the processor's terminal "money collected" state.
const PaidStatus = "paid"

type SessionRequest struct {
	AmountUSDCents int64
	Currency       string
	SuccessURL     string
	CancelURL      string
	Metadata       map[string]string
}

type Session struct {
	SessionID   string
	RedirectURL string
}

type SessionStatus struct {
	Status           string // open|complete|expired
	PaymentStatus    string // unpaid|paid
	AmountTotalCents int64
	Currency         string
}

type WebhookEvent struct {
	EventID       string            `json:"id"`
	SessionID     string            `json:"session_id"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Provider is the boundary to the external payment processor. Calls are
// network-bound and must respect the context deadline.
type Provider interface {
	Name() string
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
	GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error)

	// VerifyWebhook authenticates the pushed payload against its signature
	// header before anything is trusted.
	VerifyWebhook(body []byte, signature string) (WebhookEvent, error)
}
