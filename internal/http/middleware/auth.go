package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kmoo25z/ameriduka/internal/modules/users"
	"github.com/kmoo25z/ameriduka/internal/shared/apperr"
)

const ctxKeyUser = "current_user"

// Authenticate resolves a bearer token into the current user. A missing or
// bad token just leaves the request anonymous; RequireAuth decides whether
// that matters.
func Authenticate(svc *users.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.Next()
			return
		}

		u, err := svc.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxKeyUser, u)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the gin context.
func CurrentUser(c *gin.Context) (users.User, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return users.User{}, false
	}
	u, ok := v.(users.User)
	return u, ok
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			Fail(c, apperr.UnauthorizedErr("Authentication required."))
			return
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles through.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			Fail(c, apperr.UnauthorizedErr("Authentication required."))
			return
		}
		if !allowed[u.Role] {
			Fail(c, apperr.ForbiddenErr("You do not have access to this resource."))
			return
		}
		c.Next()
	}
}
