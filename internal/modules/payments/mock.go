package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type mockSession struct {
	amountCents int64
	currency    string
	metadata    map[string]string
	paid        bool
}

// MockProvider is an in-memory processor for development and tests. Sessions
// start unpaid; MarkPaid flips them and tests drive settlement from there.
type MockProvider struct {
	secret string

	mu       sync.Mutex
	sessions map[string]*mockSession
}

func NewMockProvider(secret string) *MockProvider {
	return &MockProvider{
		secret:   secret,
		sessions: make(map[string]*mockSession),
	}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) CreateSession(_ context.Context, req SessionRequest) (Session, error) {
	id := "cs_mock_" + uuid.NewString()[:12]

	m.mu.Lock()
	m.sessions[id] = &mockSession{
		amountCents: req.AmountUSDCents,
		currency:    req.Currency,
		metadata:    req.Metadata,
	}
	m.mu.Unlock()

	return Session{
		SessionID:   id,
		RedirectURL: "https://checkout.mock.invalid/pay/" + id,
	}, nil
}

func (m *MockProvider) GetSessionStatus(_ context.Context, sessionID string) (SessionStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return SessionStatus{}, fmt.Errorf("%w: unknown session %s", ErrProcessor, sessionID)
	}
	st := SessionStatus{
		Status:           "open",
		PaymentStatus:    "unpaid",
		AmountTotalCents: s.amountCents,
		Currency:         s.currency,
	}
	if s.paid {
		st.Status = "complete"
		st.PaymentStatus = PaidStatus
	}
	return st, nil
}

func (m *MockProvider) VerifyWebhook(body []byte, signature string) (WebhookEvent, error) {
	if err := verifySignature(m.secret, body, signature, time.Now()); err != nil {
		return WebhookEvent{}, err
	}
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return WebhookEvent{}, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return ev, nil
}

// MarkPaid flips the session to paid, as the hosted checkout page would.
func (m *MockProvider) MarkPaid(sessionID string) {
	m.mu.Lock()
	if s, ok := m.sessions[sessionID]; ok {
		s.paid = true
	}
	m.mu.Unlock()
}

// SignedEvent builds a webhook payload and matching signature for a session,
// so callers can exercise the push path end to end.
func (m *MockProvider) SignedEvent(sessionID, paymentStatus string) (body []byte, signature string) {
	m.mu.Lock()
	s := m.sessions[sessionID]
	m.mu.Unlock()

	ev := WebhookEvent{
		EventID:       "evt_" + uuid.NewString()[:12],
		SessionID:     sessionID,
		PaymentStatus: paymentStatus,
	}
	if s != nil {
		ev.Metadata = s.metadata
	}
	body, _ = json.Marshal(ev)
	return body, SignPayload(m.secret, body, time.Now())
}
