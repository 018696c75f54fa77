package ports

import (
	"gasexpress/internal/core/domain/model/kernel"
)

// StateSyncer schedules a tenant's state snapshot for publication to the
// cloud backup stream.
//
// NotifyChanged is fire-and-forget and must never block the caller:
// implementations coalesce bursts of notifications and publish a single
// snapshot per tenant after a quiet period. Losing a notification is
// acceptable; losing a tick because the broker is slow is not.
type StateSyncer interface {
	NotifyChanged(tenantID kernel.TenantID)
}
