package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kmoo25z/ameriduka/internal/modules/payments"
)

func webhookRouter(t *testing.T, migrateTransactions bool) (*gin.Engine, *payments.MockProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if migrateTransactions {
		require.NoError(t, db.AutoMigrate(&payments.Transaction{}))
	}

	provider := payments.NewMockProvider("whsec_test")
	settlement := payments.NewSettlementService(db, provider, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewWebhookHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), settlement)

	r := gin.New()
	r.POST("/api/webhook/payment", h.Payment)
	return r, provider
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/payment", bytes.NewReader(body))
	req.Header.Set(SignatureHeader, signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookBadSignatureRejected(t *testing.T) {
	r, _ := webhookRouter(t, true)

	w := postWebhook(r, []byte(`{"session_id":"cs_x","payment_status":"paid"}`), "t=1,v1=deadbeef")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookUnknownSessionStillAcked(t *testing.T) {
	r, provider := webhookRouter(t, true)

	body, sig := provider.SignedEvent("cs_never_created", payments.PaidStatus)
	w := postWebhook(r, body, sig)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["received"])
}

func TestWebhookInternalFailureStillAcked(t *testing.T) {
	// transactions table missing: settlement fails internally, but a
	// verified payload must still be acknowledged
	r, provider := webhookRouter(t, false)

	body, sig := provider.SignedEvent("cs_whatever", payments.PaidStatus)
	w := postWebhook(r, body, sig)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["received"])
}
