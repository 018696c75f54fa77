package ports

import (
	"context"

	"gasexpress/internal/core/domain/model/kernel"
)

// Geocoder resolves a free-text address to a coordinate.
//
// Resolution is best-effort: implementations absorb lookup failures
// (timeouts, empty result sets, malformed responses) and fall back to a
// jittered coordinate near the configured city center, so Resolve never
// returns an error for an unresolvable address.
type Geocoder interface {
	Resolve(ctx context.Context, address string) kernel.Coordinate
}
