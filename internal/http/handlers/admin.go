package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/http/validation"
	"github.com/kmoo25z/ameriduka/internal/modules/admin"
	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
	"github.com/kmoo25z/ameriduka/internal/shared/money"
	"github.com/kmoo25z/ameriduka/pkg/view"
)

type AdminHandler struct {
	Admin   *admin.Service
	Catalog *catalog.Repo
}

func NewAdminHandler(svc *admin.Service, repo *catalog.Repo) *AdminHandler {
	return &AdminHandler{Admin: svc, Catalog: repo}
}

// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	st, err := h.Admin.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromStats(st))
}

// GET /api/admin/inventory
func (h *AdminHandler) Inventory(c *gin.Context) {
	products, total, err := h.Catalog.Inventory(c.Request.Context(), catalog.InventoryParams{
		Page:         intQuery(c, "page", 1),
		Limit:        intQuery(c, "limit", 20),
		LowStockOnly: c.Query("low_stock_only") == "true",
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": view.FromProducts(products),
		"total":    total,
	})
}

type stockReq struct {
	Stock int `json:"stock" binding:"gte=0"`
}

// PUT /api/admin/inventory/:id/stock
func (h *AdminHandler) SetStock(c *gin.Context) {
	var req stockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}
	if err := h.Catalog.SetStock(c.Request.Context(), c.Param("id"), req.Stock); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock updated"})
}

type employeeReq struct {
	UserID         string  `json:"user_id" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Name           string  `json:"name" binding:"required"`
	Phone          string  `json:"phone" binding:"required"`
	Role           string  `json:"role" binding:"required,oneof=admin manager sales warehouse accountant support"`
	Department     string  `json:"department" binding:"required"`
	Salary         float64 `json:"salary" binding:"gte=0"`
	CommissionRate float64 `json:"commission_rate" binding:"gte=0,lte=1"`
}

// POST /api/admin/employees
func (h *AdminHandler) CreateEmployee(c *gin.Context) {
	var req employeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	e, err := h.Admin.CreateEmployee(c.Request.Context(), admin.EmployeeInput{
		UserID:         req.UserID,
		Email:          req.Email,
		Name:           req.Name,
		Phone:          req.Phone,
		Role:           req.Role,
		Department:     req.Department,
		SalaryCents:    money.FromFloat(req.Salary),
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.FromEmployee(e))
}

// GET /api/admin/employees
func (h *AdminHandler) ListEmployees(c *gin.Context) {
	list, err := h.Admin.ListEmployees(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromEmployees(list))
}

// GET /api/admin/customers
func (h *AdminHandler) ListCustomers(c *gin.Context) {
	list, err := h.Admin.ListCustomers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromCustomers(list))
}

type noteReq struct {
	Note     string `json:"note" binding:"required,max=2048"`
	NoteType string `json:"note_type" binding:"omitempty,max=32"`
}

// POST /api/admin/customers/:id/notes
func (h *AdminHandler) AddCustomerNote(c *gin.Context) {
	var req noteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	n, err := h.Admin.AddCustomerNote(c.Request.Context(), admin.NoteInput{
		CustomerID: c.Param("id"),
		AddedBy:    u.UserID,
		Note:       req.Note,
		NoteType:   req.NoteType,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.FromCustomerNote(n))
}

// GET /api/admin/customers/:id/notes
func (h *AdminHandler) ListCustomerNotes(c *gin.Context) {
	list, err := h.Admin.ListCustomerNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]view.CustomerNote, 0, len(list))
	for _, n := range list {
		out = append(out, view.FromCustomerNote(n))
	}
	c.JSON(http.StatusOK, out)
}
