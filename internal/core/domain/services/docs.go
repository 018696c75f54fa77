// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the dispatch engine. It
// implements workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - Dispatcher: A domain service selecting the nearest available driver for an order
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
