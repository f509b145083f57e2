package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/modules/orders"
	"github.com/kmoo25z/ameriduka/internal/modules/payments"
	"github.com/kmoo25z/ameriduka/internal/modules/pricing"
	"github.com/kmoo25z/ameriduka/internal/modules/promos"
	"github.com/kmoo25z/ameriduka/internal/modules/reviews"
	"github.com/kmoo25z/ameriduka/internal/modules/users"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
)

// fail maps domain errors onto the error taxonomy and hands them to the
// error-handler middleware.
func fail(c *gin.Context, err error) {
	var stockErr *catalog.InsufficientStockError
	if errors.As(err, &stockErr) {
		middleware.Fail(c, apperr.InsufficientStockErr(stockErr.Error()))
		return
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
	case errors.Is(err, orders.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
	case errors.Is(err, orders.ErrForbidden):
		middleware.Fail(c, apperr.ForbiddenErr("You do not have access to this order."))
	case errors.Is(err, orders.ErrEmptyOrder):
		middleware.Fail(c, apperr.InvalidErr("Order must contain at least one item.", nil))
	case errors.Is(err, orders.ErrInvalidTransition):
		middleware.Fail(c, apperr.InvalidErr("Invalid order status transition.", nil))
	case errors.Is(err, pricing.ErrInvalidQuantity):
		middleware.Fail(c, apperr.InvalidErr("Quantity must be at least 1.", nil))
	case errors.Is(err, users.ErrEmailTaken):
		middleware.Fail(c, apperr.ConflictErr("Email is already registered."))
	case errors.Is(err, users.ErrInvalidCredentials):
		middleware.Fail(c, apperr.UnauthorizedErr("Invalid email or password."))
	case errors.Is(err, users.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("User not found."))
	case errors.Is(err, reviews.ErrInvalidRating):
		middleware.Fail(c, apperr.InvalidErr("Rating must be between 1 and 5.", nil))
	case errors.Is(err, reviews.ErrAlreadyExists):
		middleware.Fail(c, apperr.ConflictErr("You have already reviewed this product."))
	case errors.Is(err, promos.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Promo code not found."))
	case errors.Is(err, promos.ErrInactive),
		errors.Is(err, promos.ErrExpired),
		errors.Is(err, promos.ErrExhausted),
		errors.Is(err, promos.ErrInvalidDiscount):
		middleware.Fail(c, apperr.InvalidErr(err.Error(), nil))
	case errors.Is(err, promos.ErrCodeTaken):
		middleware.Fail(c, apperr.ConflictErr("Promo code already exists."))
	case errors.Is(err, payments.ErrProcessor):
		middleware.Fail(c, apperr.ProcessorErr("Payment provider is unavailable, try again shortly.", err))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
