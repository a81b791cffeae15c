package handlers

import (
	"errors"
	"net/http"

	"foodplatform/auth"
	"foodplatform/policy"
	"foodplatform/statemachine"
	"foodplatform/store"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies every route needs. No package-level
// state: main wires one instance at startup.
type Handler struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func New(s *store.Store, a *auth.Authenticator) *Handler {
	return &Handler{Store: s, Auth: a}
}

// abortWithError maps the error taxonomy onto HTTP statuses:
// authentication failures → 401, policy denials → 403, unreachable
// lifecycle transitions → 409, missing records → 404.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrUnknownPrincipal):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, policy.ErrNotResourceOwner), errors.Is(err, policy.ErrRoleNotPermitted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, statemachine.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
