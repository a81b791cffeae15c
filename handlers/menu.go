package handlers

import (
	"net/http"

	"foodplatform/middleware"
	"foodplatform/models"
	"foodplatform/policy"
	"foodplatform/store"

	"github.com/gin-gonic/gin"
)

type CreateMenuItemRequest struct {
	RestaurantID uint    `json:"restaurant_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"image_url"`
}

// GetMenu returns a restaurant's menu. The public catalog lists available
// items only; the restaurant's owner and admins also see unavailable ones.
func (h *Handler) GetMenu(c *gin.Context) {
	restaurantID, err := pathID(c, "id")
	if err != nil {
		return
	}
	restaurant, err := h.Store.RestaurantByID(restaurantID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	p := middleware.Principal(c)
	manager := p.Role == models.RoleAdmin || p.ID == restaurant.OwnerID
	if !restaurant.IsActive && !manager {
		abortWithError(c, store.ErrNotFound)
		return
	}

	items, err := h.Store.Menu(restaurantID, manager)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// AddMenuItem adds an item to a restaurant the caller manages.
func (h *Handler) AddMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, err := h.Store.RestaurantOwner(req.RestaurantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.WriteMenu, policy.Resource{OwnerID: ownerID}); err != nil {
		abortWithError(c, err)
		return
	}

	item := models.MenuItem{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
	}
	if err := h.Store.CreateMenuItem(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateMenuItem updates a menu item. Ownership is transitive through the
// parent restaurant, so the item resolves to its restaurant's owner first.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	item, ownerID, ok := h.resolveMenuItem(c)
	if !ok {
		return
	}
	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.WriteMenu, policy.Resource{OwnerID: ownerID}); err != nil {
		abortWithError(c, err)
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{
		"name": true, "description": true, "price": true,
		"category": true, "image_url": true, "is_available": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if err := h.Store.UpdateMenuItem(item, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item after the same transitive ownership
// check as updates.
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	item, ownerID, ok := h.resolveMenuItem(c)
	if !ok {
		return
	}
	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.DeleteMenu, policy.Resource{OwnerID: ownerID}); err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.Store.DeleteMenuItem(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

func (h *Handler) resolveMenuItem(c *gin.Context) (*models.MenuItem, uint, bool) {
	itemID, err := pathID(c, "id")
	if err != nil {
		return nil, 0, false
	}
	item, err := h.Store.MenuItemByID(itemID)
	if err != nil {
		abortWithError(c, err)
		return nil, 0, false
	}
	ownerID, err := h.Store.RestaurantOwner(item.RestaurantID)
	if err != nil {
		abortWithError(c, err)
		return nil, 0, false
	}
	return item, ownerID, true
}
