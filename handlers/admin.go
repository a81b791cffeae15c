package handlers

import (
	"net/http"

	"foodplatform/middleware"
	"foodplatform/models"
	"foodplatform/policy"

	"github.com/gin-gonic/gin"
)

// AdminListUsers returns all accounts, optionally filtered by role.
func (h *Handler) AdminListUsers(c *gin.Context) {
	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.AdminReadAll, policy.Resource{}); err != nil {
		abortWithError(c, err)
		return
	}
	users, err := h.Store.Users(models.Role(c.Query("role")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminListOrders returns all orders across every restaurant.
func (h *Handler) AdminListOrders(c *gin.Context) {
	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.AdminReadAll, policy.Resource{}); err != nil {
		abortWithError(c, err)
		return
	}
	orders, err := h.Store.AllOrders(models.OrderStatus(c.Query("status")))
	if err != nil {
		abortWithError(c, err)
		return
	}

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.TotalAmount
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminListRestaurants returns every restaurant, inactive ones included.
func (h *Handler) AdminListRestaurants(c *gin.Context) {
	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.AdminReadAll, policy.Resource{}); err != nil {
		abortWithError(c, err)
		return
	}
	restaurants, err := h.Store.AllRestaurants()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}
