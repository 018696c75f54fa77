// Package order provides domain entities and business logic for order
// management in the dispatch engine. It implements the Order aggregate root
// with lifecycle management and status transitions.
//
// The package includes:
//   - Order: The aggregate root managing identity, destination, items, and lifecycle
//   - Item: A value object for an ordered product line
//   - Status: The order lifecycle states and their terminal/retryable classification
//
// Key business rules:
//   - Orders start in PENDING and are never destroyed, only filtered by status
//   - The destination coordinate is immutable once geocoded
//   - Status transitions are deliberately permissive; the single enforced side
//     effect is the inventory release that fires exactly once on cancellation
//   - The order total is fixed at creation and never recomputed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
