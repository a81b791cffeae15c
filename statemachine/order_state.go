// Package statemachine defines the order lifecycle and gates every status
// change on both reachability and authorization.
package statemachine

import (
	"errors"
	"fmt"

	"foodplatform/auth"
	"foodplatform/models"
	"foodplatform/policy"
)

// ErrInvalidTransition means the requested status is not reachable from
// the order's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// transitions is the authoritative lifecycle graph. Delivered and
// Cancelled are terminal: they appear only as targets.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:   {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing: {models.StatusDelivered, models.StatusCancelled},
	models.StatusDelivered: {},
	models.StatusCancelled: {},
}

// NextStates returns all statuses reachable from status.
func NextStates(status models.OrderStatus) []models.OrderStatus {
	return transitions[status]
}

// Terminal reports whether no further transition is defined from status.
func Terminal(status models.OrderStatus) bool {
	return len(transitions[status]) == 0
}

// CanTransition checks reachability only. Requesting the current status
// again is treated as a no-op and allowed, so retried updates stay
// idempotent.
func CanTransition(from, to models.OrderStatus) error {
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s → %s (valid next states: %s)",
		ErrInvalidTransition, from, to, describeNext(from))
}

// Transition applies a status change to order on behalf of p. The caller
// supplies the owner of the order's restaurant, already resolved.
// Authorization is checked before reachability, so a forbidden caller
// learns nothing about the order's current state. Only Status (and
// PaymentStatus on delivery) change; every other field is left untouched.
func Transition(order *models.Order, requested models.OrderStatus, p auth.Principal, restaurantOwnerID uint) error {
	if err := policy.Authorize(p, policy.UpdateOrderStatus, policy.Resource{OwnerID: restaurantOwnerID}); err != nil {
		return err
	}
	if err := CanTransition(order.Status, requested); err != nil {
		return err
	}
	order.Status = requested
	if requested == models.StatusDelivered {
		order.PaymentStatus = models.PaymentPaid
	}
	return nil
}

func describeNext(status models.OrderStatus) string {
	nexts := transitions[status]
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
