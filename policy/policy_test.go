package policy

import (
	"testing"

	"foodplatform/auth"
	"foodplatform/models"

	"github.com/stretchr/testify/assert"
)

var (
	customer  = auth.Principal{ID: 1, Role: models.RoleCustomer}
	owner     = auth.Principal{ID: 2, Role: models.RoleOwner}
	otherUser = auth.Principal{ID: 3, Role: models.RoleOwner}
	admin     = auth.Principal{ID: 4, Role: models.RoleAdmin}
	anonymous = auth.Principal{}
)

func TestAuthorize_RestaurantWrites(t *testing.T) {
	owned := Resource{OwnerID: owner.ID}

	tests := []struct {
		name      string
		principal auth.Principal
		action    Action
		resource  Resource
		expected  error
	}{
		{"owner_writes_own_restaurant", owner, WriteRestaurant, owned, nil},
		{"owner_writes_foreign_restaurant", otherUser, WriteRestaurant, owned, ErrNotResourceOwner},
		{"customer_writes_restaurant", customer, WriteRestaurant, owned, ErrRoleNotPermitted},
		{"anonymous_writes_restaurant", anonymous, WriteRestaurant, owned, ErrRoleNotPermitted},
		{"admin_writes_any_restaurant", admin, WriteRestaurant, owned, nil},
		{"owner_edits_own_menu", owner, WriteMenu, owned, nil},
		{"owner_edits_foreign_menu", otherUser, WriteMenu, owned, ErrNotResourceOwner},
		{"owner_deletes_own_menu", owner, DeleteMenu, owned, nil},
		{"customer_deletes_menu", customer, DeleteMenu, owned, ErrRoleNotPermitted},
		{"admin_deletes_any_menu", admin, DeleteMenu, owned, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, Authorize(tc.principal, tc.action, tc.resource), tc.expected)
		})
	}
}

func TestAuthorize_CatalogReadsOpenToEveryone(t *testing.T) {
	for _, p := range []auth.Principal{customer, owner, admin, anonymous} {
		assert.NoError(t, Authorize(p, ReadRestaurant, Resource{OwnerID: 99}))
		assert.NoError(t, Authorize(p, ReadMenu, Resource{OwnerID: 99}))
	}
}

func TestAuthorize_Orders(t *testing.T) {
	restaurantRes := Resource{OwnerID: owner.ID}

	tests := []struct {
		name      string
		principal auth.Principal
		action    Action
		resource  Resource
		expected  error
	}{
		{"customer_creates_order", customer, CreateOrder, Resource{}, nil},
		{"owner_creates_order", owner, CreateOrder, Resource{}, ErrRoleNotPermitted},
		{"admin_creates_order", admin, CreateOrder, Resource{}, ErrRoleNotPermitted},
		{"anonymous_creates_order", anonymous, CreateOrder, Resource{}, ErrRoleNotPermitted},

		{"customer_reads_own_orders", customer, ReadOwnOrders, Resource{CustomerID: customer.ID}, nil},
		{"customer_reads_foreign_orders", customer, ReadOwnOrders, Resource{CustomerID: 42}, ErrNotResourceOwner},
		{"admin_reads_any_customer_orders", admin, ReadOwnOrders, Resource{CustomerID: 42}, nil},

		{"owner_reads_own_restaurant_orders", owner, ReadRestaurantOrders, restaurantRes, nil},
		{"owner_reads_foreign_restaurant_orders", otherUser, ReadRestaurantOrders, restaurantRes, ErrNotResourceOwner},
		{"customer_reads_restaurant_orders", customer, ReadRestaurantOrders, restaurantRes, ErrRoleNotPermitted},
		{"admin_reads_any_restaurant_orders", admin, ReadRestaurantOrders, restaurantRes, nil},

		{"owner_updates_own_order_status", owner, UpdateOrderStatus, restaurantRes, nil},
		{"owner_updates_foreign_order_status", otherUser, UpdateOrderStatus, restaurantRes, ErrNotResourceOwner},
		{"customer_updates_order_status", customer, UpdateOrderStatus, restaurantRes, ErrRoleNotPermitted},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, Authorize(tc.principal, tc.action, tc.resource), tc.expected)
		})
	}
}

func TestAuthorize_AdminReadAll(t *testing.T) {
	assert.NoError(t, Authorize(admin, AdminReadAll, Resource{}))
	for _, p := range []auth.Principal{customer, owner, anonymous} {
		assert.ErrorIs(t, Authorize(p, AdminReadAll, Resource{}), ErrRoleNotPermitted)
	}
}

// Admins are allowed every action except placing an order, which
// structurally records the caller as the customer.
func TestAuthorize_AdminAllowedEverythingButCreateOrder(t *testing.T) {
	actions := []Action{
		ReadRestaurant, WriteRestaurant, ReadMenu, WriteMenu, DeleteMenu,
		ReadOwnOrders, ReadRestaurantOrders, UpdateOrderStatus, AdminReadAll,
	}
	for _, action := range actions {
		assert.NoError(t, Authorize(admin, action, Resource{OwnerID: 999, CustomerID: 999}), action.String())
	}
	assert.ErrorIs(t, Authorize(admin, CreateOrder, Resource{}), ErrRoleNotPermitted)
}
