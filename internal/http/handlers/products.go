package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/http/validation"
	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
	"github.com/kmoo25z/ameriduka/internal/shared/money"
	"github.com/kmoo25z/ameriduka/pkg/view"
)

type ProductsHandler struct {
	Catalog *catalog.Repo
}

func NewProductsHandler(repo *catalog.Repo) *ProductsHandler {
	return &ProductsHandler{Catalog: repo}
}

// GET /api/products
func (h *ProductsHandler) List(c *gin.Context) {
	params := catalog.ListParams{
		Page:      intQuery(c, "page", 1),
		Limit:     intQuery(c, "limit", 12),
		Category:  c.Query("category"),
		Brand:     c.Query("brand"),
		Condition: c.Query("condition"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cents := money.FromFloat(f)
			params.MinPrice = &cents
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cents := money.FromFloat(f)
			params.MaxPrice = &cents
		}
	}
	if v := c.Query("featured"); v != "" {
		b := v == "true" || v == "1"
		params.Featured = &b
	}

	res, err := h.Catalog.List(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": view.FromProducts(res.Products),
		"total":    res.Total,
		"page":     res.Page,
		"limit":    res.Limit,
	})
}

// GET /api/products/featured
func (h *ProductsHandler) Featured(c *gin.Context) {
	products, err := h.Catalog.Featured(c.Request.Context(), intQuery(c, "limit", 8))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromProducts(products))
}

// GET /api/products/categories
func (h *ProductsHandler) Categories(c *gin.Context) {
	groups, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, groupJSON(groups))
}

// GET /api/products/brands
func (h *ProductsHandler) Brands(c *gin.Context) {
	groups, err := h.Catalog.Brands(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, groupJSON(groups))
}

// GET /api/products/:id
func (h *ProductsHandler) Get(c *gin.Context) {
	p, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromProduct(p))
}

// GET /api/recommendations/:id
func (h *ProductsHandler) Recommendations(c *gin.Context) {
	products, err := h.Catalog.Recommendations(c.Request.Context(), c.Param("id"), 4)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromProducts(products))
}

type productReq struct {
	Name           string          `json:"name" binding:"required,max=255"`
	Description    string          `json:"description" binding:"required"`
	Category       string          `json:"category" binding:"required,oneof=phones laptops tablets accessories audio wearables"`
	Brand          string          `json:"brand" binding:"required,max=128"`
	Condition      string          `json:"condition" binding:"omitempty,oneof=new refurbished used"`
	Price          float64         `json:"price" binding:"required,gt=0"`
	OriginalPrice  *float64        `json:"original_price"`
	Stock          int             `json:"stock" binding:"gte=0"`
	Images         []string        `json:"images"`
	Specifications json.RawMessage `json:"specifications"`
	WarrantyMonths int             `json:"warranty_months"`
	Featured       bool            `json:"featured"`
	Tags           []string        `json:"tags"`
}

// POST /api/products  (admin|manager)
func (h *ProductsHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	if req.Condition == "" {
		req.Condition = catalog.ConditionNew
	}
	if req.WarrantyMonths == 0 {
		req.WarrantyMonths = 12
	}
	images, _ := json.Marshal(orEmpty(req.Images))
	tags, _ := json.Marshal(orEmpty(req.Tags))
	specs := req.Specifications
	if len(specs) == 0 {
		specs = json.RawMessage("{}")
	}

	p := catalog.Product{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Brand:          req.Brand,
		Condition:      req.Condition,
		PriceUSDCents:  money.FromFloat(req.Price),
		Stock:          req.Stock,
		Images:         datatypes.JSON(images),
		Specifications: datatypes.JSON(specs),
		WarrantyMonths: req.WarrantyMonths,
		Featured:       req.Featured,
		Tags:           datatypes.JSON(tags),
	}
	if req.OriginalPrice != nil {
		cents := money.FromFloat(*req.OriginalPrice)
		p.OriginalPriceUSDCents = &cents
	}

	created, err := h.Catalog.Create(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.FromProduct(created))
}

// PUT /api/products/:id  (admin|manager)
func (h *ProductsHandler) Update(c *gin.Context) {
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request body is invalid.", nil))
		return
	}

	updates := map[string]any{}
	for key, val := range req {
		switch key {
		case "name", "description", "category", "brand", "condition":
			updates[key] = val
		case "price":
			if f, ok := val.(float64); ok {
				updates["price_usd_cents"] = money.FromFloat(f)
			}
		case "original_price":
			if f, ok := val.(float64); ok {
				updates["original_price_usd_cents"] = money.FromFloat(f)
			}
		case "stock":
			if f, ok := val.(float64); ok {
				updates["stock"] = int(f)
			}
		case "warranty_months":
			if f, ok := val.(float64); ok {
				updates["warranty_months"] = int(f)
			}
		case "featured":
			updates["featured"] = val
		case "images", "tags", "specifications":
			if raw, err := json.Marshal(val); err == nil {
				updates[key] = datatypes.JSON(raw)
			}
		}
	}
	if len(updates) == 0 {
		middleware.Fail(c, apperr.InvalidErr("No updatable fields in request.", nil))
		return
	}

	p, err := h.Catalog.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromProduct(p))
}

// DELETE /api/products/:id  (admin|manager)
func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func groupJSON(groups []catalog.GroupCount) []gin.H {
	out := make([]gin.H, 0, len(groups))
	for _, g := range groups {
		out = append(out, gin.H{"name": g.Value, "count": g.Count})
	}
	return out
}
