package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/http/validation"
	"github.com/kmoo25z/ameriduka/internal/modules/promos"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
	"github.com/kmoo25z/ameriduka/internal/shared/money"
	"github.com/kmoo25z/ameriduka/pkg/view"
)

type PromosHandler struct {
	Promos *promos.Service
}

func NewPromosHandler(svc *promos.Service) *PromosHandler {
	return &PromosHandler{Promos: svc}
}

type promoCreateReq struct {
	Code            string    `json:"code" binding:"required,min=3,max=64"`
	DiscountPercent int       `json:"discount_percent" binding:"required,gte=1,lte=100"`
	MaxUses         int       `json:"max_uses" binding:"gte=0"`
	ValidUntil      time.Time `json:"valid_until" binding:"required"`
	MinOrderAmount  float64   `json:"min_order_amount" binding:"gte=0"`
}

// POST /api/admin/promos  (admin|manager)
func (h *PromosHandler) Create(c *gin.Context) {
	var req promoCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	p, err := h.Promos.Create(c.Request.Context(), promos.CreateInput{
		Code:             req.Code,
		DiscountPercent:  req.DiscountPercent,
		MaxUses:          req.MaxUses,
		ValidUntil:       req.ValidUntil,
		MinOrderUSDCents: money.FromFloat(req.MinOrderAmount),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.FromPromo(p))
}

// GET /api/admin/promos  (admin|manager)
func (h *PromosHandler) List(c *gin.Context) {
	list, err := h.Promos.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]view.Promo, 0, len(list))
	for _, p := range list {
		out = append(out, view.FromPromo(p))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/promos/validate/:code
func (h *PromosHandler) Validate(c *gin.Context) {
	p, err := h.Promos.Validate(c.Request.Context(), c.Param("code"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"promo": view.FromPromo(p),
	})
}
