// Package driver provides the Driver aggregate for the dispatch engine.
//
// A driver belongs to exactly one tenant, carries a shift status
// (available, busy, offline) and a last known position. Drivers are created
// offline; the dispatch assigner marks the winning driver busy, and shift
// actions move drivers between available and offline. The position simulator
// is the only writer of driver coordinates.
package driver
