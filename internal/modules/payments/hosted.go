package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const hostedCallTimeout = 10 * time.Second

// HostedProvider talks to an external hosted-checkout processor over HTTPS.
// Every call carries a bounded timeout so a stalled processor cannot pin
// request handlers.
type HostedProvider struct {
	baseURL       string
	apiKey        string
	webhookSecret string
	client        *http.Client
}

func NewHostedProvider(baseURL, apiKey, webhookSecret string) *HostedProvider {
	return &HostedProvider{
		baseURL:       baseURL,
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		client:        &http.Client{Timeout: hostedCallTimeout},
	}
}

func (h *HostedProvider) Name() string { return "hosted" }

type hostedSessionReq struct {
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type hostedSessionResp struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

func (h *HostedProvider) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	body := hostedSessionReq{
		AmountCents: req.AmountUSDCents,
		Currency:    req.Currency,
		SuccessURL:  req.SuccessURL,
		CancelURL:   req.CancelURL,
		Metadata:    req.Metadata,
	}
	var resp hostedSessionResp
	if err := h.call(ctx, http.MethodPost, "/v1/checkout/sessions", body, &resp); err != nil {
		return Session{}, err
	}
	return Session{SessionID: resp.ID, RedirectURL: resp.URL}, nil
}

func (h *HostedProvider) GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error) {
	var resp hostedSessionResp
	if err := h.call(ctx, http.MethodGet, "/v1/checkout/sessions/"+sessionID, nil, &resp); err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{
		Status:           resp.Status,
		PaymentStatus:    resp.PaymentStatus,
		AmountTotalCents: resp.AmountTotal,
		Currency:         resp.Currency,
	}, nil
}

func (h *HostedProvider) VerifyWebhook(body []byte, signature string) (WebhookEvent, error) {
	if err := verifySignature(h.webhookSecret, body, signature, time.Now()); err != nil {
		return WebhookEvent{}, err
	}
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return WebhookEvent{}, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return ev, nil
}

func (h *HostedProvider) call(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, hostedCallTimeout)
	defer cancel()

	var rdr io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProcessor, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrProcessor, method, path, resp.StatusCode, raw)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
