// Package order contains the Order aggregate and its supporting value objects.
//
// Order is the aggregate root for the restaurant order lifecycle: it owns the
// order items, the derived pricing fields (delivery fee and total price), the
// status state machine, and the historical location snapshot that survives
// deletion of the referenced delivery location.
//
// Pricing invariant maintained by the aggregate:
//
//	total_price == Σ(item.subtotal) + delivery_fee
//
// The aggregate recomputes derived fields on every item mutation and location
// change, with re-entrancy protection so a recompute triggered by a save never
// triggers itself again.
package order
