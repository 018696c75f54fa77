package driver

import (
	"fmt"

	"gasexpress/internal/pkg/errs"
)

// Status represents a driver's shift state.
//
// Drivers are created Offline. Shift actions toggle Available and Offline;
// the dispatch assigner is the only path that sets Busy. Cancelling an order
// does not free its driver - the shift surface does.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOffline means the driver is off shift and invisible to dispatch.
	StatusOffline

	// StatusAvailable means the driver is on shift and eligible for assignment.
	StatusAvailable

	// StatusBusy means the driver has been dispatched on an order.
	StatusBusy
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusOffline:   "offline",
		StatusAvailable: "available",
		StatusBusy:      "busy",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusOffline:   "offline",
		StatusAvailable: "available",
		StatusBusy:      "busy",
	}
}

// StatusFromString parses a shift-state name ("available", "busy", "offline").
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("driver status",
		fmt.Errorf("%q is not a valid driver status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("driver status",
			fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}

// String returns the shift-state name. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
