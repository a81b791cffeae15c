// Package policy is the single authorization decision point. Every
// protected route builds a Resource snapshot and makes exactly one
// Authorize call; no handler re-implements ownership checks.
package policy

import (
	"errors"

	"foodplatform/auth"
	"foodplatform/models"
)

var (
	// ErrNotResourceOwner means the caller's role permits the action but
	// the target belongs to someone else.
	ErrNotResourceOwner = errors.New("not the owner of this resource")
	// ErrRoleNotPermitted means the caller's role can never perform the
	// action, regardless of ownership.
	ErrRoleNotPermitted = errors.New("role not permitted for this action")
)

// Action enumerates everything a principal can ask the platform to do.
type Action int

const (
	ReadRestaurant Action = iota
	WriteRestaurant
	ReadMenu
	WriteMenu
	DeleteMenu
	CreateOrder
	ReadOwnOrders
	ReadRestaurantOrders
	UpdateOrderStatus
	AdminReadAll
)

func (a Action) String() string {
	switch a {
	case ReadRestaurant:
		return "ReadRestaurant"
	case WriteRestaurant:
		return "WriteRestaurant"
	case ReadMenu:
		return "ReadMenu"
	case WriteMenu:
		return "WriteMenu"
	case DeleteMenu:
		return "DeleteMenu"
	case CreateOrder:
		return "CreateOrder"
	case ReadOwnOrders:
		return "ReadOwnOrders"
	case ReadRestaurantOrders:
		return "ReadRestaurantOrders"
	case UpdateOrderStatus:
		return "UpdateOrderStatus"
	case AdminReadAll:
		return "AdminReadAll"
	}
	return "Unknown"
}

// Resource is the already-resolved ownership snapshot of the target.
// Callers resolve MenuItem and Order targets to their parent restaurant's
// owner before calling Authorize; the policy never touches storage.
type Resource struct {
	// OwnerID is the owning restaurant's owner, for restaurant, menu and
	// order-management actions.
	OwnerID uint
	// CustomerID is the customer an order belongs to, for ReadOwnOrders.
	CustomerID uint
}

// Authorize decides whether p may perform action on res. A nil return
// means allow. Rules are checked in precedence order; the first match wins.
func Authorize(p auth.Principal, action Action, res Resource) error {
	// Admins may do everything except place orders: CreateOrder records
	// the acting principal as the customer, and admins do not impersonate.
	if p.Role == models.RoleAdmin {
		if action == CreateOrder {
			return ErrRoleNotPermitted
		}
		return nil
	}

	switch action {
	case ReadRestaurant, ReadMenu:
		// Open catalog. Visibility filtering of inactive restaurants and
		// unavailable items happens in the store, not here.
		return nil

	case WriteRestaurant, WriteMenu, DeleteMenu:
		if p.Role != models.RoleOwner {
			return ErrRoleNotPermitted
		}
		if p.ID != res.OwnerID {
			return ErrNotResourceOwner
		}
		return nil

	case CreateOrder:
		if p.Role != models.RoleCustomer {
			return ErrRoleNotPermitted
		}
		return nil

	case ReadOwnOrders:
		if p.Role != models.RoleCustomer {
			return ErrRoleNotPermitted
		}
		if p.ID != res.CustomerID {
			return ErrNotResourceOwner
		}
		return nil

	case ReadRestaurantOrders, UpdateOrderStatus:
		if p.Role != models.RoleOwner {
			return ErrRoleNotPermitted
		}
		if p.ID != res.OwnerID {
			return ErrNotResourceOwner
		}
		return nil
	}

	return ErrRoleNotPermitted
}
