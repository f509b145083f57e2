package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/http/validation"
	"github.com/kmoo25z/ameriduka/internal/modules/cart"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
	"github.com/kmoo25z/ameriduka/pkg/view"
)

type CartHandler struct {
	Cart *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{Cart: svc}
}

// GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	currency := c.DefaultQuery("currency", "USD")

	summary, err := h.Cart.Get(c.Request.Context(), u.UserID, currency)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromCart(summary))
}

type cartAddReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=1"`
}

// POST /api/cart/add
func (h *CartHandler) Add(c *gin.Context) {
	var req cartAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	u, _ := middleware.CurrentUser(c)
	if err := h.Cart.Add(c.Request.Context(), u.UserID, req.ProductID, req.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

type cartUpdateReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"gte=0"`
}

// PUT /api/cart/update
func (h *CartHandler) Update(c *gin.Context) {
	var req cartUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	if err := h.Cart.Update(c.Request.Context(), u.UserID, req.ProductID, req.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// DELETE /api/cart/clear
func (h *CartHandler) Clear(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	if err := h.Cart.Clear(c.Request.Context(), u.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
