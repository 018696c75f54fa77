package commands

import (
	"errors"

	"gasexpress/internal/pkg/guard"
)

var ErrMoveDriversCommandIsNotConstructed = errors.New(
	"MoveDriversCommand must be created via NewMoveDriversCommand constructor",
)

// MoveDriversCommand represents one simulation tick across all tenants.
// The command carries no parameters; the scheduler issues it at a fixed rate.
type MoveDriversCommand struct {
	guard guard.ConstructorGuard
}

// NewMoveDriversCommand creates a command to advance the position simulation.
func NewMoveDriversCommand() MoveDriversCommand {
	return MoveDriversCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c MoveDriversCommand) Validate() error {
	return c.guard.Validate(ErrMoveDriversCommandIsNotConstructed)
}
