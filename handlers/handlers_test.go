package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodplatform/auth"
	"foodplatform/handlers"
	"foodplatform/models"
	"foodplatform/routes"
	"foodplatform/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	))

	st := store.New(db)
	authenticator := auth.NewAuthenticator([]byte("test-secret"), time.Hour, st)
	handler := handlers.New(st, authenticator)

	router := gin.New()
	routes.SetupRoutes(router, handler, authenticator)
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) register(name string, role models.Role) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    name + "@example.com",
		"password": "secret123",
		"role":     role,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (a *testAPI) createRestaurant(ownerToken string) uint {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/restaurants", ownerToken, gin.H{
		"name":          "Casa Test",
		"cuisine":       "Italian",
		"delivery_time": "30-40 min",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Restaurant models.Restaurant `json:"restaurant"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Restaurant.ID
}

func (a *testAPI) addMenuItem(ownerToken string, restaurantID uint, name string, price float64) uint {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/menu-items", ownerToken, gin.H{
		"restaurant_id": restaurantID,
		"name":          name,
		"price":         price,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Item models.MenuItem `json:"item"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Item.ID
}

func (a *testAPI) placeOrder(customerToken string, restaurantID, itemID uint) uint {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/orders", customerToken, gin.H{
		"restaurant_id":    restaurantID,
		"delivery_address": "1 Test Street",
		"items":            []gin.H{{"menu_item_id": itemID, "quantity": 2}},
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Order models.Order `json:"order"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Order.ID
}

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)
	api.register("alice", models.RoleCustomer)

	w := api.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Duplicate registration
	w = api.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnauthenticatedWriteRejectedBeforeOwnership(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner", models.RoleOwner)
	restaurantID := api.createRestaurant(owner)

	// No token at all: 401, not 403/404 — the request never reaches the
	// ownership check.
	w := api.do(http.MethodPost, "/api/menu-items", "", gin.H{
		"restaurant_id": restaurantID,
		"name":          "Pizza",
		"price":         12.0,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/api/menu-items", "garbage-token", gin.H{
		"restaurant_id": restaurantID,
		"name":          "Pizza",
		"price":         12.0,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMenuOwnershipIsTransitive(t *testing.T) {
	api := newTestAPI(t)
	owner1 := api.register("owner1", models.RoleOwner)
	owner2 := api.register("owner2", models.RoleOwner)
	restaurantID := api.createRestaurant(owner1)
	itemID := api.addMenuItem(owner1, restaurantID, "Lasagna", 14.0)

	// A different owner cannot touch the item.
	path := fmt.Sprintf("/api/menu-items/%d", itemID)
	w := api.do(http.MethodPut, path, owner2, gin.H{"price": 1.0})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = api.do(http.MethodDelete, path, owner2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The restaurant's owner can.
	w = api.do(http.MethodPut, path, owner1, gin.H{"price": 15.0})
	assert.Equal(t, http.StatusOK, w.Code)

	// Adding to someone else's restaurant is forbidden too.
	w = api.do(http.MethodPost, "/api/menu-items", owner2, gin.H{
		"restaurant_id": restaurantID,
		"name":          "Intruder Special",
		"price":         9.0,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderLifecycleFlow(t *testing.T) {
	api := newTestAPI(t)
	owner1 := api.register("owner1", models.RoleOwner)
	owner2 := api.register("owner2", models.RoleOwner)
	customer := api.register("customer", models.RoleCustomer)
	restaurantID := api.createRestaurant(owner1)
	itemID := api.addMenuItem(owner1, restaurantID, "Risotto", 16.0)
	orderID := api.placeOrder(customer, restaurantID, itemID)

	statusPath := fmt.Sprintf("/api/orders/%d/status", orderID)

	// A different owner is denied.
	w := api.do(http.MethodPatch, statusPath, owner2, gin.H{"status": "Preparing"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The customer cannot drive the lifecycle either.
	w = api.do(http.MethodPatch, statusPath, customer, gin.H{"status": "Cancelled"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The restaurant's owner moves it along.
	w = api.do(http.MethodPatch, statusPath, owner1, gin.H{"status": "Preparing"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Unreachable target: Preparing → Pending.
	w = api.do(http.MethodPatch, statusPath, owner1, gin.H{"status": "Pending"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Same-state request is an accepted no-op, repeatedly.
	for i := 0; i < 2; i++ {
		w = api.do(http.MethodPatch, statusPath, owner1, gin.H{"status": "Preparing"})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w = api.do(http.MethodPatch, statusPath, owner1, gin.H{"status": "Delivered"})
	require.Equal(t, http.StatusOK, w.Code)

	// Terminal: nothing moves out of Delivered.
	w = api.do(http.MethodPatch, statusPath, owner1, gin.H{"status": "Preparing"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The customer sees the delivered, paid order.
	w = api.do(http.MethodGet, "/api/orders/my-orders", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, models.StatusDelivered, resp.Orders[0].Status)
	assert.Equal(t, models.PaymentPaid, resp.Orders[0].PaymentStatus)
	assert.Equal(t, 32.0, resp.Orders[0].TotalAmount)
}

func TestOrderPlacementRules(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner", models.RoleOwner)
	admin := api.register("admin", models.RoleAdmin)
	restaurantID := api.createRestaurant(owner)
	itemID := api.addMenuItem(owner, restaurantID, "Pasta", 11.0)

	// Only customers place orders.
	for _, token := range []string{owner, admin} {
		w := api.do(http.MethodPost, "/api/orders", token, gin.H{
			"restaurant_id":    restaurantID,
			"delivery_address": "1 Test Street",
			"items":            []gin.H{{"menu_item_id": itemID, "quantity": 1}},
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	}

	// Unavailable items cannot be ordered.
	customer := api.register("customer", models.RoleCustomer)
	itemPath := fmt.Sprintf("/api/menu-items/%d", itemID)
	w := api.do(http.MethodPut, itemPath, owner, gin.H{"is_available": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, "/api/orders", customer, gin.H{
		"restaurant_id":    restaurantID,
		"delivery_address": "1 Test Street",
		"items":            []gin.H{{"menu_item_id": itemID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestaurantOrdersAccess(t *testing.T) {
	api := newTestAPI(t)
	owner1 := api.register("owner1", models.RoleOwner)
	owner2 := api.register("owner2", models.RoleOwner)
	admin := api.register("admin", models.RoleAdmin)
	customer := api.register("customer", models.RoleCustomer)
	restaurantID := api.createRestaurant(owner1)
	itemID := api.addMenuItem(owner1, restaurantID, "Gnocchi", 13.0)
	api.placeOrder(customer, restaurantID, itemID)

	path := fmt.Sprintf("/api/orders/restaurant/%d", restaurantID)

	w := api.do(http.MethodGet, path, owner1, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, path, owner2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodGet, path, customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin reads any restaurant's orders regardless of ownership.
	w = api.do(http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	api := newTestAPI(t)
	admin := api.register("admin", models.RoleAdmin)
	customer := api.register("customer", models.RoleCustomer)

	for _, path := range []string{"/api/admin/users", "/api/admin/orders", "/api/admin/restaurants"} {
		w := api.do(http.MethodGet, path, admin, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)

		w = api.do(http.MethodGet, path, customer, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)

		w = api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCatalogVisibility(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner", models.RoleOwner)
	restaurantID := api.createRestaurant(owner)
	api.addMenuItem(owner, restaurantID, "Special", 20.0)

	// Deactivate the restaurant.
	w := api.do(http.MethodPut, fmt.Sprintf("/api/restaurants/%d", restaurantID), owner,
		gin.H{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)

	// Anonymous catalog hides it.
	w = api.do(http.MethodGet, "/api/restaurants", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Zero(t, listing.Count)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/restaurants/%d", restaurantID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The owner still reads it for management.
	w = api.do(http.MethodGet, fmt.Sprintf("/api/restaurants/%d", restaurantID), owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodGet, fmt.Sprintf("/api/restaurants/%d/menu", restaurantID), owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
