package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homenest-api/dto"
	"homenest-api/identity"
	"homenest-api/services"
)

// Gin context keys set by the auth middleware.
const (
	contextIdentityKey = "identity"
)

// RequireToken verifies the bearer token on every request it guards and
// stores the verified identity in the context. Verification always goes to
// the identity provider's signatures; no verdict is ever cached.
func RequireToken(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := verifier.Verify(c.Request.Context(), c.GetHeader("Authorization"))
		if errors.Is(err, identity.ErrMissingToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "unauthorized",
				Message: "Unauthorized. Token not found!",
			})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "unauthorized",
				Message: "Unauthorized access.",
			})
			return
		}

		c.Set(contextIdentityKey, caller)
		c.Next()
	}
}

// RequireAdmin gates a route on the stored admin role. It runs after
// RequireToken and denies before any store mutation is attempted.
func RequireAdmin(users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := IdentityFromContext(c)
		if caller == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "unauthorized",
				Message: "Unauthorized access.",
			})
			return
		}

		isAdmin, err := users.IsAdmin(c.Request.Context(), caller.Email)
		if err != nil {
			Logger(c).WithError(err).Error("admin role lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "internal_error",
				Message: "Internal server error",
			})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "forbidden",
				Message: "Access denied. Admin only.",
			})
			return
		}

		c.Next()
	}
}

// IdentityFromContext returns the verified caller stored by RequireToken,
// or nil on unauthenticated routes.
func IdentityFromContext(c *gin.Context) *identity.Identity {
	val, exists := c.Get(contextIdentityKey)
	if !exists {
		return nil
	}
	caller, ok := val.(*identity.Identity)
	if !ok {
		return nil
	}
	return caller
}
