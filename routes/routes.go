package routes

import (
	"foodplatform/auth"
	"foodplatform/handlers"
	"foodplatform/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, a *auth.Authenticator) {
	api := r.Group("/api")

	// ── Public routes ──────────────────────────────────────────────
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/state-machine", h.GetStateMachineInfo)

	// Catalog: open to everyone, but a presented credential is resolved
	// so owners and admins can read their inactive listings.
	catalog := api.Group("")
	catalog.Use(middleware.OptionalAuth(a))
	{
		catalog.GET("/restaurants", h.ListRestaurants)
		catalog.GET("/restaurants/:id", h.GetRestaurant)
		catalog.GET("/restaurants/:id/menu", h.GetMenu)
	}

	// ── Authenticated routes ───────────────────────────────────────
	// Role and ownership gating happens inside each handler through the
	// policy package; the middleware only establishes the principal.
	authed := api.Group("")
	authed.Use(middleware.Auth(a))
	{
		authed.GET("/profile", h.GetProfile)

		authed.POST("/restaurants", h.CreateRestaurant)
		authed.PUT("/restaurants/:id", h.UpdateRestaurant)
		authed.GET("/my/restaurants", h.MyRestaurants)

		authed.POST("/menu-items", h.AddMenuItem)
		authed.PUT("/menu-items/:id", h.UpdateMenuItem)
		authed.DELETE("/menu-items/:id", h.DeleteMenuItem)

		authed.POST("/orders", h.PlaceOrder)
		authed.GET("/orders/my-orders", h.MyOrders)
		authed.GET("/orders/restaurant/:restaurantId", h.RestaurantOrders)
		authed.PATCH("/orders/:id/status", h.UpdateOrderStatus)

		authed.GET("/admin/users", h.AdminListUsers)
		authed.GET("/admin/orders", h.AdminListOrders)
		authed.GET("/admin/restaurants", h.AdminListRestaurants)
	}
}
