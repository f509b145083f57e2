package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/modules/payments"
)

// SignatureHeader carries the webhook HMAC signature.
const SignatureHeader = "X-Payment-Signature"

type WebhookHandler struct {
	Logger     *slog.Logger
	Settlement *payments.SettlementService
}

func NewWebhookHandler(logger *slog.Logger, st *payments.SettlementService) *WebhookHandler {
	return &WebhookHandler{Logger: logger, Settlement: st}
}

// POST /api/webhook/payment
//
// An unverifiable payload is rejected with 400 so the processor retries with
// a good signature. Once verified, internal failures are logged but still
// acknowledged: the signal will be reapplied by the next poll or webhook,
// and a 5xx would only make the processor hammer us with a payload we
// already understood.
func (h *WebhookHandler) Payment(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	err = h.Settlement.HandleWebhook(c.Request.Context(), body, c.GetHeader(SignatureHeader))
	if errors.Is(err, payments.ErrVerification) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature or payload"})
		return
	}
	if err != nil {
		h.Logger.ErrorContext(c.Request.Context(), "webhook settlement failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
