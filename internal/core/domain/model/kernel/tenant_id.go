package kernel

import (
	"gasexpress/internal/pkg/errs"
)

// ErrTenantIDIsRequired indicates that an empty TenantID reached a scoped operation.
var ErrTenantIDIsRequired = errs.NewValueIsRequiredError("tenantId")

// TenantID identifies the isolated business account that owns an entity.
// Every repository method and every command in the engine takes a TenantID,
// and the persistence adapters translate it into a mandatory filter, so an
// operation scoped to one tenant can never observe another tenant's rows
// even when names or identifiers collide.
//
// TenantID is an immutable value object; the zero value is invalid.
type TenantID struct {
	value string
}

// NewTenantID creates a TenantID from its external string form.
// Returns ErrTenantIDIsRequired for the empty string.
func NewTenantID(value string) (TenantID, error) {
	if value == "" {
		return TenantID{}, ErrTenantIDIsRequired
	}
	return TenantID{value: value}, nil
}

// String returns the external string form of the tenant identifier.
func (t TenantID) String() string {
	return t.value
}

// IsEqual compares two tenant identifiers.
func (t TenantID) IsEqual(other TenantID) bool {
	return t.value == other.value
}

// Validate checks that the TenantID was created through its constructor.
func (t TenantID) Validate() error {
	if t.value == "" {
		return ErrTenantIDIsRequired
	}
	return nil
}
