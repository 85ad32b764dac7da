package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrUpdateCourierCommandIsNotConstructed = errors.New(
		"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
	)
	ErrEmptyCourierPatch = errors.New("at least one attribute must be patched")
)

// UpdateCourierCommand represents a partial update of a courier's profile.
// A nil field means "leave unchanged"; a non-nil empty slice means "set to
// empty". At least one field must be present.
type UpdateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.CourierID
	transport    *kernel.TransportType
	regions      *[]kernel.RegionID
	workingHours *[]kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewUpdateCourierCommand creates a command to patch a courier's profile.
func NewUpdateCourierCommand(
	courierID kernel.CourierID,
	transport *kernel.TransportType,
	regions *[]kernel.RegionID,
	workingHours *[]kernel.TimeWindow,
) (UpdateCourierCommand, error) {
	command := UpdateCourierCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}

	if transport == nil && regions == nil && workingHours == nil {
		return UpdateCourierCommand{}, ErrEmptyCourierPatch
	}

	if err := errors.Join(
		command.setTransport(transport),
		command.setWorkingHours(workingHours),
	); err != nil {
		return UpdateCourierCommand{}, err
	}
	command.regions = regions

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier being patched.
func (c UpdateCourierCommand) CourierID() kernel.CourierID {
	return c.courierID
}

// Transport returns the new transport type, if present in the patch.
func (c UpdateCourierCommand) Transport() (kernel.TransportType, bool) {
	if c.transport == nil {
		return "", false
	}
	return *c.transport, true
}

// Regions returns the new region set, if present in the patch.
func (c UpdateCourierCommand) Regions() ([]kernel.RegionID, bool) {
	if c.regions == nil {
		return nil, false
	}
	return *c.regions, true
}

// WorkingHours returns the new working windows, if present in the patch.
func (c UpdateCourierCommand) WorkingHours() ([]kernel.TimeWindow, bool) {
	if c.workingHours == nil {
		return nil, false
	}
	return *c.workingHours, true
}

func (c *UpdateCourierCommand) setTransport(transport *kernel.TransportType) error {
	if transport == nil {
		return nil
	}
	if err := transport.Validate(); err != nil {
		return err
	}

	c.transport = transport
	return nil
}

func (c *UpdateCourierCommand) setWorkingHours(workingHours *[]kernel.TimeWindow) error {
	if workingHours == nil {
		return nil
	}
	for _, window := range *workingHours {
		if err := window.Validate(); err != nil {
			return err
		}
	}

	c.workingHours = workingHours
	return nil
}
