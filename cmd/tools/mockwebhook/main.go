package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

type webhookPayload struct {
	ID            string            `json:"id"`
	SessionID     string            `json:"session_id"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

func main() {
	url := flag.String("url", "http://localhost:8080/api/webhook/payment", "Webhook URL")
	secret := flag.String("secret", os.Getenv("PAYMENT_WEBHOOK_SECRET"), "Webhook secret")
	eventID := flag.String("event-id", "evt_"+randomHex(8), "Event ID")
	sessionID := flag.String("session-id", "", "Checkout session ID (required)")
	status := flag.String("status", "paid", "Payment status (paid, unpaid)")
	orderID := flag.String("order-id", "", "Order ID for metadata")
	dryRun := flag.Bool("dry-run", false, "Only print signature header, don't send")

	flag.Parse()

	if *secret == "" {
		fmt.Fprintf(os.Stderr, "Error: secret not provided and PAYMENT_WEBHOOK_SECRET not set\n")
		os.Exit(1)
	}
	if *sessionID == "" {
		fmt.Fprintf(os.Stderr, "Error: -session-id is required\n")
		os.Exit(1)
	}

	payload := webhookPayload{
		ID:            *eventID,
		SessionID:     *sessionID,
		PaymentStatus: *status,
	}
	if *orderID != "" {
		payload.Metadata = map[string]string{"order_id": *orderID}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	t := time.Now().Unix()
	sigHeader := fmt.Sprintf("t=%d,v1=%s", t, computeSig([]byte(*secret), t, body))

	fmt.Printf("X-Payment-Signature: %s\n", sigHeader)
	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	req, err := http.NewRequest("POST", *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Payment-Signature", sigHeader)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func computeSig(secret []byte, t int64, body []byte) string {
	m := hmac.New(sha256.New, secret)
	m.Write([]byte(strconv.FormatInt(t, 10)))
	m.Write([]byte("."))
	m.Write(body)
	return hex.EncodeToString(m.Sum(nil))
}

func randomHex(n int) string {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = "0123456789abcdef"[time.Now().UnixNano()%16]
	}
	return string(b)
}
