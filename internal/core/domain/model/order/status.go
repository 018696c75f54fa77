package order

import (
	"fmt"

	"gasexpress/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The intended flow is:
//
//	Pending ──> Accepted ──> OnRoute ──> Arrived ──> Delivered
//	    │           │           │           │
//	    └───────────┴─────┬─────┴───────────┘
//	                      ├──> Cancelled    (terminal)
//	                      └──> ClientAbsent (retryable)
//
// Transitions are deliberately not restricted to this flow: dispatchers
// correct mistakes by moving orders backward, and ClientAbsent orders are
// re-driven through OnRoute on the next attempt. The one side effect the
// engine enforces is the inventory release when an order first enters
// Cancelled, which Order.ChangeStatus reports to its caller.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status at order intake. A pending order may or
	// may not already have a driver assigned, depending on availability.
	Pending

	// Accepted indicates the assigned driver confirmed the order.
	Accepted

	// OnRoute indicates the driver is traveling to the destination.
	// Only OnRoute orders are advanced by the position simulator.
	OnRoute

	// Arrived indicates the driver reached the destination.
	Arrived

	// Delivered indicates the order was fulfilled. Terminal.
	Delivered

	// Cancelled indicates the order was called off. Terminal. Entering this
	// status releases the reserved inventory exactly once.
	Cancelled

	// ClientAbsent indicates nobody received the delivery. Not terminal;
	// the order can be re-driven on a later attempt.
	ClientAbsent
)

// getStatusStrings returns the wire names for every Status value,
// including Unknown, to support string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "UNKNOWN",
		Pending:      "PENDING",
		Accepted:     "ACCEPTED",
		OnRoute:      "ON_ROUTE",
		Arrived:      "ARRIVED",
		Delivered:    "DELIVERED",
		Cancelled:    "CANCELLED",
		ClientAbsent: "CLIENT_ABSENT",
	}
}

// getValidStatusStrings returns only the valid Status values to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:      "PENDING",
		Accepted:     "ACCEPTED",
		OnRoute:      "ON_ROUTE",
		Arrived:      "ARRIVED",
		Delivered:    "DELIVERED",
		Cancelled:    "CANCELLED",
		ClientAbsent: "CLIENT_ABSENT",
	}
}

// StatusFromString parses a wire name (e.g. "ON_ROUTE") into a Status.
// Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("PENDING", "ON_ROUTE", ...).
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status ends the order lifecycle.
// Delivered and Cancelled are terminal; ClientAbsent is retryable and is not.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}
