package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/http/validation"
	"github.com/kmoo25z/ameriduka/internal/modules/orders"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
	"github.com/kmoo25z/ameriduka/pkg/view"
)

type OrdersHandler struct {
	Orders *orders.Service
}

func NewOrdersHandler(svc *orders.Service) *OrdersHandler {
	return &OrdersHandler{Orders: svc}
}

type orderItemReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type orderCreateReq struct {
	Items           []orderItemReq `json:"items" binding:"required"`
	ShippingAddress string         `json:"shipping_address" binding:"required"`
	ShippingCity    string         `json:"shipping_city" binding:"required"`
	ShippingCountry string         `json:"shipping_country" binding:"required"`
	Phone           string         `json:"phone" binding:"required"`
	Currency        string         `json:"currency" binding:"omitempty,len=3"`
	PaymentMethod   string         `json:"payment_method" binding:"required,oneof=stripe paypal mpesa"`
	Notes           *string        `json:"notes"`
}

// POST /api/orders
func (h *OrdersHandler) Create(c *gin.Context) {
	var req orderCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	u, _ := middleware.CurrentUser(c)
	items := make([]orders.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orders.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	o, err := h.Orders.Create(c.Request.Context(), orders.CreateInput{
		UserID:          u.UserID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingCountry: req.ShippingCountry,
		Phone:           req.Phone,
		Currency:        req.Currency,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.FromOrder(o))
}

// GET /api/orders
func (h *OrdersHandler) List(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	list, err := h.Orders.List(c.Request.Context(), u.UserID, u.Role, intQuery(c, "limit", 50))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromOrders(list))
}

// GET /api/orders/:id
func (h *OrdersHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	o, err := h.Orders.Get(c.Request.Context(), c.Param("id"), u.UserID, u.Role)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromOrder(o))
}

type orderStatusReq struct {
	Status         string  `json:"status" binding:"required"`
	TrackingNumber *string `json:"tracking_number"`
}

// PUT /api/orders/:id/status
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	var req orderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	id := c.Param("id")
	if err := h.Orders.UpdateStatus(c.Request.Context(), id, req.Status, u.Role); err != nil {
		fail(c, err)
		return
	}
	if req.TrackingNumber != nil {
		if err := h.Orders.SetTracking(c.Request.Context(), id, *req.TrackingNumber, u.Role); err != nil {
			fail(c, err)
			return
		}
	}

	o, err := h.Orders.Get(c.Request.Context(), id, u.UserID, u.Role)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromOrder(o))
}
