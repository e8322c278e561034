package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrDeleteLocationCommandIsNotConstructed = errors.New(
	"DeleteLocationCommand must be created via NewDeleteLocationCommand constructor",
)

// DeleteLocationCommand represents a request to remove a delivery location
// from the catalog.
type DeleteLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteLocationCommand creates a command to delete a location.
func NewDeleteLocationCommand(locationID kernel.UUID) (DeleteLocationCommand, error) {
	command := DeleteLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setLocationID(locationID); err != nil {
		return DeleteLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteLocationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLocationCommandIsNotConstructed)
}

// LocationID returns the location to delete.
func (c DeleteLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c *DeleteLocationCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}
