package handlers

import (
	"net/http"

	"foodplatform/middleware"
	"foodplatform/models"
	"foodplatform/policy"
	"foodplatform/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlaceOrderRequest struct {
	RestaurantID    uint   `json:"restaurant_id" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Items           []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// PlaceOrder creates a new order in Pending state. Item names and prices
// are snapshotted and the total is computed server-side from the current
// menu, never taken from the request.
func (h *Handler) PlaceOrder(c *gin.Context) {
	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.CreateOrder, policy.Resource{}); err != nil {
		abortWithError(c, err)
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.Store.RestaurantByID(req.RestaurantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !restaurant.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is not accepting orders"})
		return
	}

	var orderItems []models.OrderItem
	var total float64
	for _, reqItem := range req.Items {
		menuItem, err := h.Store.MenuItemByID(reqItem.MenuItemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
			return
		}
		if menuItem.RestaurantID != req.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not belong to this restaurant"})
			return
		}
		if !menuItem.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		total += menuItem.Price * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
			Name:       menuItem.Name,
		})
	}

	order := models.Order{
		Number:          uuid.NewString(),
		CustomerID:      p.ID,
		RestaurantID:    req.RestaurantID,
		Items:           orderItems,
		TotalAmount:     total,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		DeliveryAddress: req.DeliveryAddress,
	}
	if err := h.Store.CreateOrder(&order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	h.Store.AddStatusHistory(&models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: p.ID,
		Note:      "Order placed by customer",
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// MyOrders returns the logged-in customer's orders.
func (h *Handler) MyOrders(c *gin.Context) {
	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.ReadOwnOrders, policy.Resource{CustomerID: p.ID}); err != nil {
		abortWithError(c, err)
		return
	}
	orders, err := h.Store.OrdersByCustomer(p.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// RestaurantOrders returns every order placed at one restaurant, for its
// owner or an admin.
func (h *Handler) RestaurantOrders(c *gin.Context) {
	restaurantID, err := pathID(c, "restaurantId")
	if err != nil {
		return
	}
	ownerID, err := h.Store.RestaurantOwner(restaurantID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	p := middleware.Principal(c)
	if err := policy.Authorize(p, policy.ReadRestaurantOrders, policy.Resource{OwnerID: ownerID}); err != nil {
		abortWithError(c, err)
		return
	}

	orders, err := h.Store.OrdersByRestaurant(restaurantID, models.OrderStatus(c.Query("status")))
	if err != nil {
		abortWithError(c, err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// UpdateOrderStatus drives the order lifecycle. The state machine gates
// both authorization (owner of the order's restaurant, or admin) and
// reachability of the requested status.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		return
	}
	order, err := h.Store.OrderByID(orderID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ownerID, err := h.Store.RestaurantOwner(order.RestaurantID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := middleware.Principal(c)
	prevStatus := order.Status
	if err := statemachine.Transition(order, req.Status, p, ownerID); err != nil {
		abortWithError(c, err)
		return
	}
	if req.Status == prevStatus {
		// Same-state request: accepted as a no-op, nothing to persist.
		c.JSON(http.StatusOK, gin.H{
			"message":        "Order already in requested status",
			"order_id":       order.ID,
			"current_status": order.Status,
		})
		return
	}

	if err := h.Store.SaveOrderStatus(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	h.Store.AddStatusHistory(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   order.Status,
		ChangedBy:  p.ID,
		Note:       req.Note,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"current_status":  order.Status,
	})
}

// GetStateMachineInfo publishes the lifecycle graph.
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	graph := gin.H{}
	for _, status := range []models.OrderStatus{
		models.StatusPending, models.StatusPreparing,
		models.StatusDelivered, models.StatusCancelled,
	} {
		graph[string(status)] = statemachine.NextStates(status)
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   graph,
		"initial_state":   models.StatusPending,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
	})
}
