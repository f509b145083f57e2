package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/http/validation"
	"github.com/kmoo25z/ameriduka/internal/modules/payments"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
	"github.com/kmoo25z/ameriduka/internal/shared/money"
)

type PaymentsHandler struct {
	Checkout   *payments.CheckoutService
	Settlement *payments.SettlementService
}

func NewPaymentsHandler(co *payments.CheckoutService, st *payments.SettlementService) *PaymentsHandler {
	return &PaymentsHandler{Checkout: co, Settlement: st}
}

type checkoutReq struct {
	OrderID   string `json:"order_id" binding:"required"`
	OriginURL string `json:"origin_url" binding:"required,url"`
}

// POST /api/payments/checkout
func (h *PaymentsHandler) CreateSession(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	res, err := h.Checkout.CreateSession(c.Request.Context(), req.OrderID, u.UserID, req.OriginURL)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        res.RedirectURL,
		"session_id": res.SessionID,
	})
}

// GET /api/payments/status/:session_id
func (h *PaymentsHandler) SessionStatus(c *gin.Context) {
	res, err := h.Settlement.Poll(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         res.Status,
		"payment_status": res.PaymentStatus,
		"amount":         money.ToFloat(res.AmountTotalCents),
		"currency":       res.Currency,
	})
}

// POST /api/payments/mpesa/initiate
//
// STK push needs Daraja API credentials that are not wired up; the endpoint
// keeps its contract and reports itself as a mock.
func (h *PaymentsHandler) InitiateMpesa(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":      "M-Pesa integration requires Safaricom Daraja API credentials",
		"status":       "mock",
		"instructions": "Please use Stripe or PayPal for testing",
	})
}
