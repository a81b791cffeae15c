package middleware

import (
	"errors"
	"net/http"
	"strings"

	"foodplatform/auth"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Auth resolves the bearer token and injects the principal into the
// request context. Requests without a valid credential are rejected
// before any handler or ownership check runs.
func Auth(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := a.Resolve(bearerToken(c))
		if err != nil {
			msg := "Invalid or expired token"
			if errors.Is(err, auth.ErrUnknownPrincipal) {
				msg = "Account not found"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// OptionalAuth resolves the principal when a credential is presented but
// lets anonymous requests through. Public catalog routes use it so owners
// and admins can see their own inactive listings.
func OptionalAuth(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}
		p, err := a.Resolve(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// Principal extracts the caller from context. The zero value means an
// anonymous request on a public route.
func Principal(c *gin.Context) auth.Principal {
	if v, ok := c.Get(principalKey); ok {
		return v.(auth.Principal)
	}
	return auth.Principal{}
}
