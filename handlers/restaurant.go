package handlers

import (
	"net/http"
	"strconv"

	"foodplatform/middleware"
	"foodplatform/models"
	"foodplatform/policy"
	"foodplatform/store"

	"github.com/gin-gonic/gin"
)

type CreateRestaurantRequest struct {
	Name         string `json:"name" binding:"required"`
	Cuisine      string `json:"cuisine" binding:"required"`
	DeliveryTime string `json:"delivery_time" binding:"required"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

// ListRestaurants returns the public catalog of active restaurants.
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.Store.Restaurants(store.RestaurantFilter{
		Cuisine: c.Query("cuisine"),
		Search:  c.Query("search"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns one restaurant. Inactive restaurants stay visible
// to their owner and to admins for management; everyone else gets 404.
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	restaurant, err := h.Store.RestaurantByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	p := middleware.Principal(c)
	if !restaurant.IsActive && p.Role != models.RoleAdmin && p.ID != restaurant.OwnerID {
		abortWithError(c, store.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// MyRestaurants lists every restaurant of the logged-in owner, inactive
// ones included.
func (h *Handler) MyRestaurants(c *gin.Context) {
	p := middleware.Principal(c)
	restaurants, err := h.Store.RestaurantsByOwner(p.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// CreateRestaurant registers a restaurant owned by the caller.
func (h *Handler) CreateRestaurant(c *gin.Context) {
	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.WriteRestaurant, policy.Resource{OwnerID: p.ID}); err != nil {
		abortWithError(c, err)
		return
	}

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:      p.ID,
		Name:         req.Name,
		Cuisine:      req.Cuisine,
		DeliveryTime: req.DeliveryTime,
		Address:      req.Address,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if err := h.Store.CreateRestaurant(&restaurant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// UpdateRestaurant updates restaurant details. Ownership is immutable:
// owner_id is not among the writable fields.
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	restaurant, err := h.Store.RestaurantByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.WriteRestaurant, policy.Resource{OwnerID: restaurant.OwnerID}); err != nil {
		abortWithError(c, err)
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{
		"name": true, "cuisine": true, "delivery_time": true,
		"address": true, "phone": true, "is_active": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if err := h.Store.UpdateRestaurant(restaurant, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, err
	}
	return uint(id), nil
}
