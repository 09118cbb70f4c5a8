package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storeroom/internal/core/apperror"
	appctx "storeroom/internal/core/context"
)

// TokenValidator validates an access token and returns the admin identity.
type TokenValidator interface {
	ValidateToken(tokenString string) (*appctx.Identity, error)
}

// Identity middleware validates the bearer token and attaches the acting
// admin to the request context. The identity is trusted as given; there is
// no permission model beyond being a known admin.
func Identity(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		ident, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Request = c.Request.WithContext(appctx.WithIdentity(c.Request.Context(), ident))
		c.Set("admin_id", ident.AdminID)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(&apperror.AppError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	})
	c.Abort()
}
