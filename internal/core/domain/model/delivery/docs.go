// Package delivery contains the delivery-side aggregates: catalog Locations,
// Riders and delivery Assignments.
//
// A Location is a named delivery zone with a fee. A Rider is a person who
// delivers orders, with availability and capacity tracking. An Assignment
// links one rider to one order and walks a strict status chain from assigned
// to delivered (or returned), with cancellation possible from any
// non-terminal state.
package delivery
