package commands

import (
	"context"
	"errors"
	"log/slog"

	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/core/ports"
)

// DefaultMovementStep is the per-axis advance applied to a dispatched
// driver on each tick, in degrees.
const DefaultMovementStep = 0.0005

// MoveDriversCommandHandler advances the position simulation by one tick.
//
// Per tenant, inside one transaction: every driver with an on-route order
// steps toward that order's destination and snaps onto it when within one
// step; drivers that have never been placed on the map get a jittered
// position near the city center. Orders that left OnRoute between ticks are
// re-read inside the transaction, so a just-delivered order never drags its
// driver further.
//
// Tenants fail independently: a broken tenant is logged and skipped, the
// rest of the fleet keeps moving.
type MoveDriversCommandHandler struct {
	uowFactory     MovementUoWFactory
	tenantRepo     ports.TenantRepository
	positionCache  ports.PositionCache
	syncer         ports.StateSyncer
	fallbackCenter kernel.Coordinate
	step           float64
	logger         *slog.Logger
}

// NewMoveDriversCommandHandler creates a handler for the simulation tick.
func NewMoveDriversCommandHandler(
	uowFactory MovementUoWFactory,
	tenantRepo ports.TenantRepository,
	positionCache ports.PositionCache,
	syncer ports.StateSyncer,
	fallbackCenter kernel.Coordinate,
	step float64,
	logger *slog.Logger,
) MoveDriversCommandHandler {
	if step <= 0 {
		step = DefaultMovementStep
	}

	return MoveDriversCommandHandler{
		uowFactory:     uowFactory,
		tenantRepo:     tenantRepo,
		positionCache:  positionCache,
		syncer:         syncer,
		fallbackCenter: fallbackCenter,
		step:           step,
		logger:         logger.With("component", "move_drivers"),
	}
}

// Handle processes one tick for every registered tenant.
func (h *MoveDriversCommandHandler) Handle(ctx context.Context, cmd MoveDriversCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	tenants, err := h.tenantRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	var tickErr error
	for _, tenantID := range tenants {
		if err := h.moveTenant(ctx, tenantID); err != nil {
			h.logger.Error("tick failed for tenant",
				"tenant", tenantID.String(), "error", err)
			tickErr = errors.Join(tickErr, err)
		}
	}

	return tickErr
}

// moveTenant advances all of one tenant's drivers in a single transaction.
func (h *MoveDriversCommandHandler) moveTenant(ctx context.Context, tenantID kernel.TenantID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	orderRepo := uow.OrderRepository()

	drivers, err := driverRepo.GetAll(ctx, tenantID)
	if err != nil {
		return err
	}

	// Re-reading on-route orders inside the transaction is what keeps the
	// tick idempotent against concurrent status changes.
	onRoute, err := orderRepo.GetAllOnRoute(ctx, tenantID)
	if err != nil {
		return err
	}

	ordersByDriver := make(map[string]*order.Order, len(onRoute))
	for _, o := range onRoute {
		if o.DriverID() != nil && o.Destination() != nil {
			ordersByDriver[o.DriverID().String()] = o
		}
	}

	moved := make([]*driver.Driver, 0, len(drivers))
	for _, d := range drivers {
		changed, err := h.moveDriver(d, ordersByDriver[d.ID().String()])
		if err != nil {
			return err
		}
		if !changed {
			continue
		}

		if err = driverRepo.Update(ctx, d); err != nil {
			return err
		}
		moved = append(moved, d)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishPositions(ctx, tenantID, moved)
	if len(moved) > 0 {
		h.syncer.NotifyChanged(tenantID)
	}

	return nil
}

// moveDriver applies one tick to a single driver and reports whether its
// position changed. A driver with no active order and a known position is
// left untouched.
func (h *MoveDriversCommandHandler) moveDriver(d *driver.Driver, active *order.Order) (bool, error) {
	if active == nil {
		if d.HasCoordinate() {
			return false, nil
		}

		bootstrap, err := kernel.NewJitteredCoordinate(h.fallbackCenter, kernel.DefaultJitterSpread)
		if err != nil {
			return false, err
		}
		return true, d.SetCoordinate(bootstrap)
	}

	position := d.Coordinate()
	if position == nil {
		bootstrap, err := kernel.NewJitteredCoordinate(h.fallbackCenter, kernel.DefaultJitterSpread)
		if err != nil {
			return false, err
		}
		position = &bootstrap
	}

	next, err := position.StepToward(*active.Destination(), h.step)
	if err != nil {
		return false, err
	}

	return true, d.SetCoordinate(next)
}

// publishPositions pushes moved drivers to the live position cache.
// The cache is best-effort; failures are logged and absorbed.
func (h *MoveDriversCommandHandler) publishPositions(
	ctx context.Context,
	tenantID kernel.TenantID,
	moved []*driver.Driver,
) {
	for _, d := range moved {
		if err := h.positionCache.SetPosition(ctx, tenantID, d.ID(), *d.Coordinate()); err != nil {
			h.logger.Warn("position cache write failed",
				"tenant", tenantID.String(), "driver", d.ID().String(), "error", err)
		}
	}
}
