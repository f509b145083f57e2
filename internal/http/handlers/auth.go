package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/http/validation"
	"github.com/kmoo25z/ameriduka/internal/modules/users"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
	"github.com/kmoo25z/ameriduka/pkg/view"
)

type AuthHandler struct {
	Users *users.Service
}

func NewAuthHandler(svc *users.Service) *AuthHandler {
	return &AuthHandler{Users: svc}
}

type registerReq struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Phone    *string `json:"phone"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	u, token, err := h.Users.Register(c.Request.Context(), users.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  view.FromUser(u),
		"token": token,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, &req)))
		return
	}

	u, token, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  view.FromUser(u),
		"token": token,
	})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, view.FromUser(u))
}

// POST /api/auth/logout
//
// Tokens are stateless, so logout is client-side; the endpoint exists for
// API symmetry.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
