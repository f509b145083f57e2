package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/http/validation"
	"github.com/kmoo25z/ameriduka/internal/modules/reviews"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
	"github.com/kmoo25z/ameriduka/pkg/view"
)

type ReviewsHandler struct {
	Reviews *reviews.Service
}

func NewReviewsHandler(svc *reviews.Service) *ReviewsHandler {
	return &ReviewsHandler{Reviews: svc}
}

type reviewReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment" binding:"required,max=2048"`
}

// POST /api/reviews
func (h *ReviewsHandler) Create(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	r, err := h.Reviews.Create(c.Request.Context(), reviews.CreateInput{
		ProductID: req.ProductID,
		UserID:    u.UserID,
		UserName:  u.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.FromReview(r))
}

// GET /api/reviews/:product_id
func (h *ReviewsHandler) ListByProduct(c *gin.Context) {
	list, err := h.Reviews.ListByProduct(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromReviews(list))
}
