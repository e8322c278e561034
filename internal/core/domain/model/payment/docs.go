// Package payment contains the Payment entity and its value types.
//
// A Payment is one row in an order's payment ledger: either money received
// (a payment) or money returned (a refund). Rows are append-only; a recorded
// amount is never edited, corrections are made by adding compensating rows.
// Only rows in the completed status count toward an order's balance.
package payment
