package services

import (
	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
)

// Dispatcher is a domain service responsible for selecting the driver for a
// new order based on great-circle distance to the destination.
//
// Key responsibilities:
//   - Filtering candidates down to available drivers
//   - Bootstrapping a position for drivers that have never reported one
//   - Selecting the closest candidate with a stable, documented tie-break
//   - Marking the winner busy and recording the assignment on the order
//
// Business rules:
//   - Having no available driver is not a failure: the order simply stays
//     pending and unassigned until capacity appears
//   - Ties on distance are broken by ascending driver id (lexicographic UUID
//     string), which makes assignment reproducible for a fixed fleet
//
// Example usage:
//
//	dispatcher := NewDispatcher(cityCenter)
//	assigned, err := dispatcher.Dispatch(newOrder, destination, candidates)
//	if err != nil {
//	    // Handle validation failure
//	}
//	if assigned == nil {
//	    // No capacity right now; the order stays pending
//	}
type Dispatcher struct {
	// fallbackCenter anchors the jitter bootstrap for drivers without a position
	fallbackCenter kernel.Coordinate
}

// NewDispatcher creates a Dispatcher that bootstraps unknown driver positions
// around the given city center.
func NewDispatcher(fallbackCenter kernel.Coordinate) Dispatcher {
	return Dispatcher{fallbackCenter: fallbackCenter}
}

// Dispatch selects the nearest available driver for the order and executes
// the assignment workflow: the winner is marked busy and its id is recorded
// on the order.
//
// Parameters:
//   - o: The order being dispatched (must be valid)
//   - destination: The geocoded delivery coordinate (must be valid)
//   - candidates: Drivers to consider; non-available ones are skipped
//
// Returns:
//   - *driver.Driver: The assigned driver, or nil when no candidate is
//     available (the order stays pending - this is not an error)
//   - error: Validation error if the order, destination, or a candidate is invalid
func (d Dispatcher) Dispatch(
	o *order.Order,
	destination kernel.Coordinate,
	candidates []*driver.Driver,
) (*driver.Driver, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := destination.Validate(); err != nil {
		return nil, err
	}

	best, err := d.findNearestDriver(destination, candidates)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, nil //nolint:nilnil // no capacity is an expected outcome, not an error
	}

	best.MarkBusy()
	if err = o.AssignDriver(best.ID()); err != nil {
		return nil, err
	}

	return best, nil
}

// findNearestDriver evaluates the candidates and returns the closest
// available one, or nil when none qualifies.
//
// A candidate without a known position gets one synthesized via the jitter
// fallback before the distance is computed, so a fresh fleet can be
// dispatched immediately after registration.
func (d Dispatcher) findNearestDriver(
	destination kernel.Coordinate,
	candidates []*driver.Driver,
) (*driver.Driver, error) {
	var (
		best     *driver.Driver
		bestDist float64
	)

	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		if !candidate.IsAvailable() {
			continue
		}

		if !candidate.HasCoordinate() {
			bootstrap, err := kernel.NewJitteredCoordinate(d.fallbackCenter, kernel.DefaultJitterSpread)
			if err != nil {
				return nil, err
			}
			if err = candidate.SetCoordinate(bootstrap); err != nil {
				return nil, err
			}
		}

		dist, err := destination.DistanceKm(*candidate.Coordinate())
		if err != nil {
			return nil, err
		}

		if best == nil || dist < bestDist || (dist == bestDist && candidate.ID().String() < best.ID().String()) {
			best = candidate
			bestDist = dist
		}
	}

	return best, nil
}
